package profile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/risk"
)

func assessment(score float64) domain.RiskAssessment {
	level := risk.LevelFor(score)
	return domain.RiskAssessment{Score: score, Level: level, Badge: risk.Badge(level)}
}

func TestRecommendAllocation_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, AllocationCore},
		{3.5, AllocationCore},
		{3.6, AllocationModerate},
		{6.5, AllocationModerate},
		{6.6, AllocationSpeculative},
		{10.0, AllocationSpeculative},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.1f", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendAllocation(tt.score))
		})
	}
}

func TestComposeInsights_LargeUnlimitedPrivacyCluster(t *testing.T) {
	stats := &domain.ClusterStatistics{
		Size:          40,
		TopAlgorithms: []domain.CountEntry{{Key: "Equihash", Count: 30}, {Key: "Ethash", Count: 10}},
		TopProofTypes: []domain.CountEntry{{Key: "PoW/PoS", Count: 40}},
		Members:       map[string]struct{}{},
	}

	got := ComposeInsights(stats, assessment(7.5))

	assert.Equal(t, AllocationSpeculative, got.Allocation)
	assert.Equal(t, strategyByLevel[domain.RiskLevelHigh], got.Strategy)
	assert.Equal(t, []string{
		"Proof-of-Stake enables passive income through staking",
		"Unlimited supply may lead to inflationary pressure",
	}, got.Considerations)
	assert.Equal(t, []string{
		"Large cluster provides good diversification within similar assets",
		"Privacy-focused cryptocurrencies with growing demand",
		"Smart contract platforms with DeFi and NFT ecosystems",
	}, got.Opportunities)
	assert.Equal(t, []string{"⚠️ HIGH RISK: Significant potential for losses"}, got.Warnings)
}

func TestComposeInsights_Fallbacks(t *testing.T) {
	stats := &domain.ClusterStatistics{
		Size:          15,
		AvgSupply:     10,
		SupplyStddev:  1,
		TopAlgorithms: []domain.CountEntry{{Key: "X11", Count: 15}},
		TopProofTypes: []domain.CountEntry{{Key: "DPoW", Count: 15}},
		Members:       map[string]struct{}{},
	}

	got := ComposeInsights(stats, assessment(5.0))

	assert.Empty(t, got.Considerations)
	assert.Equal(t, []string{fallbackOpportunity}, got.Opportunities)
	assert.Equal(t, []string{fallbackWarning}, got.Warnings)
	assert.Equal(t, strategyByLevel[domain.RiskLevelMedium], got.Strategy)
}

func TestComposeInsights_SupplyVolatilityWarning(t *testing.T) {
	stats := &domain.ClusterStatistics{
		Size:          12,
		AvgSupply:     100,
		SupplyStddev:  250,
		TopAlgorithms: []domain.CountEntry{{Key: "SHA-256", Count: 12}},
		TopProofTypes: []domain.CountEntry{{Key: "PoW", Count: 12}},
		Members:       map[string]struct{}{"Litecoin": {}},
	}

	got := ComposeInsights(stats, assessment(3.0))

	assert.Equal(t, AllocationCore, got.Allocation)
	assert.Equal(t, []string{"⚠️ High volatility in supply metrics across cluster"}, got.Warnings)
	assert.Equal(t, []string{"Exposure to industry-leading cryptocurrencies with proven adoption"}, got.Opportunities)
	assert.Equal(t, []string{
		"SHA-256 coins compete directly with Bitcoin for mining resources",
		"Proof-of-Work provides battle-tested security but higher energy costs",
	}, got.Considerations)
}
