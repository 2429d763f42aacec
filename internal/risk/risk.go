// Package risk scores clusters on a bounded 1-10 scale from five additive rules.
package risk

import (
	"math"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/metrics"
)

// Score bounds and level thresholds.
const (
	BaseScore = 5.0
	MinScore  = 1.0
	MaxScore  = 10.0

	LowThreshold    = 3.5 // score <= 3.5 is Low
	MediumThreshold = 6.5 // score <= 6.5 is Medium, above is High
)

// Rule thresholds.
const (
	supplyCVThreshold        = 2.0
	diversificationMinSize   = 20
	zeroSupplyShareThreshold = 0.3
)

// EstablishedCoins is the watchlist whose presence lowers cluster risk.
var EstablishedCoins = []string{"Bitcoin", "Ethereum", "Litecoin", "Dash", "Monero"}

// Factor texts appended when a rule fires.
const (
	FactorHighSupplyVariance   = "High supply variance across cluster"
	FactorLimitedDiversity     = "Limited cluster diversification"
	FactorGoodDiversity        = "Good diversification within cluster"
	FactorEstablishedCoins     = "Contains established, proven cryptocurrencies"
	FactorSingleAlgorithm      = "Single algorithm dependency"
	FactorUnlimitedSupplyShare = "High percentage of unlimited supply coins"
)

// clusterInput is the derived view of a cluster's rows that rules read from.
type clusterInput struct {
	size            int
	supplyCV        float64
	members         map[string]struct{}
	distinctAlgos   int
	zeroSupplyShare float64
}

// factorRule is one adjustment. Rules run in table order and each may append one factor.
type factorRule struct {
	name  string
	apply func(in *clusterInput) (delta float64, factor string, fired bool)
}

var factorRules = []factorRule{
	{
		name: "supply_variance",
		apply: func(in *clusterInput) (float64, string, bool) {
			if in.supplyCV > supplyCVThreshold {
				return 1.5, FactorHighSupplyVariance, true
			}
			return 0, "", false
		},
	},
	{
		// Always fires in one direction or the other.
		name: "diversification",
		apply: func(in *clusterInput) (float64, string, bool) {
			if in.size < diversificationMinSize {
				return 1.0, FactorLimitedDiversity, true
			}
			return -0.5, FactorGoodDiversity, true
		},
	},
	{
		name: "established_coins",
		apply: func(in *clusterInput) (float64, string, bool) {
			for _, name := range EstablishedCoins {
				if _, ok := in.members[name]; ok {
					return -2.0, FactorEstablishedCoins, true
				}
			}
			return 0, "", false
		},
	},
	{
		name: "single_algorithm",
		apply: func(in *clusterInput) (float64, string, bool) {
			if in.distinctAlgos == 1 {
				return 0.5, FactorSingleAlgorithm, true
			}
			return 0, "", false
		},
	},
	{
		name: "unlimited_supply",
		apply: func(in *clusterInput) (float64, string, bool) {
			if in.zeroSupplyShare > zeroSupplyShareThreshold {
				return 1.0, FactorUnlimitedSupplyShare, true
			}
			return 0, "", false
		},
	},
}

// Score computes the risk assessment of one cluster from its raw rows.
// Pure function of coins; an empty slice scores as a neutral small cluster.
func Score(coins []*domain.Coin) domain.RiskAssessment {
	in := buildInput(coins)

	score := BaseScore
	factors := make([]string, 0, len(factorRules))
	for _, rule := range factorRules {
		delta, factor, fired := rule.apply(in)
		if !fired {
			continue
		}
		score += delta
		factors = append(factors, factor)
	}

	score = math.Max(MinScore, math.Min(MaxScore, score))
	level := LevelFor(score)

	return domain.RiskAssessment{
		Score:   roundToTenth(score),
		Level:   level,
		Badge:   Badge(level),
		Factors: factors,
	}
}

// LevelFor maps a score to its level. Boundaries are inclusive on the lower bucket.
func LevelFor(score float64) domain.RiskLevel {
	switch {
	case score <= LowThreshold:
		return domain.RiskLevelLow
	case score <= MediumThreshold:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelHigh
	}
}

// Badge returns the report marker for a level.
func Badge(level domain.RiskLevel) string {
	switch level {
	case domain.RiskLevelLow:
		return "🟢"
	case domain.RiskLevelMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

func buildInput(coins []*domain.Coin) *clusterInput {
	in := &clusterInput{
		size:    len(coins),
		members: make(map[string]struct{}, len(coins)),
	}
	if len(coins) == 0 {
		return in
	}

	supplies := make([]float64, len(coins))
	algos := make(map[string]struct{})
	zeroSupply := 0
	for i, c := range coins {
		supplies[i] = c.TotalSupply
		in.members[c.Name] = struct{}{}
		algos[c.Algorithm] = struct{}{}
		if c.TotalSupply == 0 {
			zeroSupply++
		}
	}

	in.supplyCV = metrics.Stddev(supplies) / (metrics.Mean(supplies) + 1)
	in.distinctAlgos = len(algos)
	in.zeroSupplyShare = float64(zeroSupply) / float64(len(coins))
	return in
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
