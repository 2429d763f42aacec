package domain

// ROIScenario is a static return assumption for one risk appetite.
type ROIScenario struct {
	Name           string    `json:"name" yaml:"name" validate:"required"`
	ExpectedReturn float64   `json:"expected_return" yaml:"expected_return"` // percent per 12 months
	Volatility     float64   `json:"volatility" yaml:"volatility" validate:"gte=0"`
	RiskLevel      RiskLevel `json:"risk_level" yaml:"risk_level" validate:"oneof=Low Medium High"`
}

// ROIProjection is the projected outcome of one scenario.
type ROIProjection struct {
	Scenario      string    `json:"scenario"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Amount        float64   `json:"amount"`
	HorizonMonths int       `json:"horizon_months"`
	ExpectedValue float64   `json:"expected_value"`
	Profit        float64   `json:"profit"`
	ROIPercent    float64   `json:"roi_percent"`
	Volatility    float64   `json:"volatility"`
	Allocation    string    `json:"allocation"`
}
