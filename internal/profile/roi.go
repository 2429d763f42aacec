package profile

import (
	"errors"
	"math"

	"crypto-cluster-insights/internal/domain"
)

// ErrInvalidROIInput is returned for a non-positive or non-finite amount, or a non-positive horizon.
var ErrInvalidROIInput = errors.New("roi: amount and horizon must be positive")

// Portfolio bands attached to ROI projections. Unlike profile allocations they carry no label.
const (
	ROIAllocationLow    = "20-40%"
	ROIAllocationMedium = "10-20%"
	ROIAllocationHigh   = "0-5%"
)

var allocationByLevel = map[domain.RiskLevel]string{
	domain.RiskLevelLow:    ROIAllocationLow,
	domain.RiskLevelMedium: ROIAllocationMedium,
	domain.RiskLevelHigh:   ROIAllocationHigh,
}

// Defaults for a projection request that names no amount or horizon.
const (
	DefaultROIAmount        = 10000.0
	DefaultROIHorizonMonths = 12
)

// DefaultROIScenarios are used when no scenarios are configured.
var DefaultROIScenarios = []domain.ROIScenario{
	{Name: "Conservative", ExpectedReturn: 15, Volatility: 10, RiskLevel: domain.RiskLevelLow},
	{Name: "Moderate", ExpectedReturn: 35, Volatility: 25, RiskLevel: domain.RiskLevelMedium},
	{Name: "Aggressive", ExpectedReturn: 75, Volatility: 50, RiskLevel: domain.RiskLevelHigh},
}

// ProjectROI applies simple (non-compounding) annual returns to amount over horizonMonths.
func ProjectROI(amount float64, horizonMonths int, scenarios []domain.ROIScenario) ([]domain.ROIProjection, error) {
	if !(amount > 0) || math.IsInf(amount, 1) || horizonMonths <= 0 {
		return nil, ErrInvalidROIInput
	}

	out := make([]domain.ROIProjection, len(scenarios))
	for i, s := range scenarios {
		expected := amount * (1 + s.ExpectedReturn/100*float64(horizonMonths)/12)
		profit := expected - amount
		out[i] = domain.ROIProjection{
			Scenario:      s.Name,
			RiskLevel:     s.RiskLevel,
			Amount:        amount,
			HorizonMonths: horizonMonths,
			ExpectedValue: expected,
			Profit:        profit,
			ROIPercent:    profit / amount * 100,
			Volatility:    s.Volatility,
			Allocation:    allocationByLevel[s.RiskLevel],
		}
	}
	return out, nil
}
