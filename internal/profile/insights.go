package profile

import (
	"strings"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/risk"
)

// Allocation bands keyed by risk score.
const (
	AllocationCore        = "20-40% (Core Holdings)"
	AllocationModerate    = "10-20% (Moderate Position)"
	AllocationSpeculative = "0-5% (Speculative Only)"
)

var strategyByLevel = map[domain.RiskLevel]string{
	domain.RiskLevelLow:    "Long-term hold strategy (HODL). Consider dollar-cost averaging for accumulation.",
	domain.RiskLevelMedium: "Balanced approach with regular rebalancing. Monitor market conditions closely.",
	domain.RiskLevelHigh:   "High-risk, high-reward. Only invest what you can afford to lose. Short-term trading may be appropriate.",
}

const (
	fallbackOpportunity = "Research individual projects for unique value propositions"
	fallbackWarning     = "✓ No major red flags identified"
)

// opportunityCoins is narrower than risk.EstablishedCoins.
var opportunityCoins = []string{"Bitcoin", "Ethereum", "Litecoin"}

// insightInput is what insight rules read.
type insightInput struct {
	stats *domain.ClusterStatistics
	risk  domain.RiskAssessment
}

// textRule emits text when when() holds. Lists are evaluated in order.
type textRule struct {
	when func(in *insightInput) bool
	text string
}

// chainRule is a group of mutually exclusive alternatives: the first matching entry wins.
type chainRule []textRule

var considerationChains = []chainRule{
	{
		{when: func(in *insightInput) bool { return in.stats.DominantAlgorithm() == "SHA-256" },
			text: "SHA-256 coins compete directly with Bitcoin for mining resources"},
		{when: func(in *insightInput) bool { return in.stats.DominantAlgorithm() == "Scrypt" },
			text: "Scrypt algorithm offers faster block times but different security model"},
	},
	{
		{when: func(in *insightInput) bool { return strings.Contains(in.stats.DominantProofType(), "PoS") },
			text: "Proof-of-Stake enables passive income through staking"},
		{when: func(in *insightInput) bool { return in.stats.DominantProofType() == "PoW" },
			text: "Proof-of-Work provides battle-tested security but higher energy costs"},
	},
	{
		{when: func(in *insightInput) bool { return in.stats.AvgSupply == 0 },
			text: "Unlimited supply may lead to inflationary pressure"},
	},
}

var opportunityRules = []textRule{
	{when: func(in *insightInput) bool { return in.stats.HasAnyMember(opportunityCoins...) },
		text: "Exposure to industry-leading cryptocurrencies with proven adoption"},
	{when: func(in *insightInput) bool { return in.stats.Size > 30 },
		text: "Large cluster provides good diversification within similar assets"},
	{when: func(in *insightInput) bool { return in.stats.HasTopAlgorithm("Equihash") },
		text: "Privacy-focused cryptocurrencies with growing demand"},
	{when: func(in *insightInput) bool { return in.stats.HasTopAlgorithm("Ethash") },
		text: "Smart contract platforms with DeFi and NFT ecosystems"},
}

var warningRules = []textRule{
	{when: func(in *insightInput) bool { return in.risk.Score > 7 },
		text: "⚠️ HIGH RISK: Significant potential for losses"},
	{when: func(in *insightInput) bool { return in.stats.Size < 10 },
		text: "⚠️ Small cluster may indicate niche or outdated technologies"},
	{when: func(in *insightInput) bool { return in.stats.SupplyStddev > in.stats.AvgSupply*2 },
		text: "⚠️ High volatility in supply metrics across cluster"},
}

// ComposeInsights builds the investment commentary for a cluster.
func ComposeInsights(stats *domain.ClusterStatistics, assessment domain.RiskAssessment) domain.InvestmentInsights {
	in := &insightInput{stats: stats, risk: assessment}

	return domain.InvestmentInsights{
		Allocation:     RecommendAllocation(assessment.Score),
		Strategy:       strategyByLevel[assessment.Level],
		Considerations: evalChains(considerationChains, in),
		Opportunities:  withFallback(evalRules(opportunityRules, in), fallbackOpportunity),
		Warnings:       withFallback(evalRules(warningRules, in), fallbackWarning),
	}
}

// RecommendAllocation maps a risk score to a portfolio allocation band.
func RecommendAllocation(score float64) string {
	switch {
	case score <= risk.LowThreshold:
		return AllocationCore
	case score <= risk.MediumThreshold:
		return AllocationModerate
	default:
		return AllocationSpeculative
	}
}

func evalRules(rules []textRule, in *insightInput) []string {
	out := []string{}
	for _, r := range rules {
		if r.when(in) {
			out = append(out, r.text)
		}
	}
	return out
}

func evalChains(chains []chainRule, in *insightInput) []string {
	out := []string{}
	for _, chain := range chains {
		for _, r := range chain {
			if r.when(in) {
				out = append(out, r.text)
				break
			}
		}
	}
	return out
}

func withFallback(items []string, fallback string) []string {
	if len(items) == 0 {
		return []string{fallback}
	}
	return items
}
