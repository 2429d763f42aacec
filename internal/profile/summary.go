package profile

import (
	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/metrics"
	"crypto-cluster-insights/internal/risk"
)

// Distribution sizes for the market summary.
const (
	algorithmDistributionSize = 10
	proofDistributionSize     = 5
	concentrationShare        = 0.5
)

// GenerateMarketSummary aggregates across every cluster of the dataset.
func (a *Analyzer) GenerateMarketSummary() domain.MarketSummary {
	algorithms := make([]string, len(a.coins))
	proofs := make([]string, len(a.coins))
	for i, c := range a.coins {
		algorithms[i] = c.Algorithm
		proofs[i] = c.ProofType
	}

	return domain.MarketSummary{
		TotalCoins:            len(a.coins),
		TotalClusters:         len(a.ids),
		AvgClusterSize:        float64(len(a.coins)) / float64(len(a.ids)),
		Structure:             a.marketStructure(),
		AlgorithmDistribution: metrics.TopCounts(algorithms, algorithmDistributionSize),
		ProofDistribution:     metrics.TopCounts(proofs, proofDistributionSize),
		RiskDistribution:      a.riskDistribution(),
	}
}

func (a *Analyzer) marketStructure() domain.MarketStructure {
	largest, smallest := 0, 0
	for i, id := range a.ids {
		size := a.stats[id].Size
		if i == 0 || size > largest {
			largest = size
		}
		if i == 0 || size < smallest {
			smallest = size
		}
	}

	concentration := "Balanced"
	if float64(largest) > float64(len(a.coins))*concentrationShare {
		concentration = "High"
	}

	return domain.MarketStructure{
		LargestCluster:  largest,
		SmallestCluster: smallest,
		Concentration:   concentration,
	}
}

func (a *Analyzer) riskDistribution() domain.RiskDistribution {
	var dist domain.RiskDistribution
	for _, id := range a.ids {
		switch risk.Score(a.groups[id]).Level {
		case domain.RiskLevelLow:
			dist.Low++
		case domain.RiskLevelMedium:
			dist.Medium++
		case domain.RiskLevelHigh:
			dist.High++
		}
	}
	return dist
}
