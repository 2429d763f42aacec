package risk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-cluster-insights/internal/domain"
)

func coin(name, algo string, supply float64) *domain.Coin {
	return &domain.Coin{Name: name, Algorithm: algo, ProofType: "PoW", TotalMined: 100, TotalSupply: supply}
}

func TestLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.RiskLevel
	}{
		{1.0, domain.RiskLevelLow},
		{3.4, domain.RiskLevelLow},
		{3.5, domain.RiskLevelLow},
		{3.6, domain.RiskLevelMedium},
		{6.5, domain.RiskLevelMedium},
		{6.6, domain.RiskLevelHigh},
		{10.0, domain.RiskLevelHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.1f", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFor(tt.score))
		})
	}
}

func TestScore_SmallSingleAlgorithmCluster_IsMediumAtBoundary(t *testing.T) {
	// 5.0 + 1.0 (small) + 0.5 (single algorithm) = 6.5
	a := Score([]*domain.Coin{
		coin("A", "X11", 1000),
		coin("B", "X11", 1000),
	})

	assert.Equal(t, 6.5, a.Score)
	assert.Equal(t, domain.RiskLevelMedium, a.Level)
	assert.Equal(t, []string{FactorLimitedDiversity, FactorSingleAlgorithm}, a.Factors)
}

func TestScore_LowAtBoundary(t *testing.T) {
	// 20 coins: 7 with zero supply (35%), Bitcoin present, two algorithms, CV < 2.
	// 5.0 - 0.5 (diversified) - 2.0 (established) + 1.0 (unlimited supply) = 3.5
	var coins []*domain.Coin
	coins = append(coins, coin("Bitcoin", "SHA-256", 1000))
	for i := 1; i < 13; i++ {
		coins = append(coins, coin(fmt.Sprintf("Coin%d", i), "Scrypt", 1000))
	}
	for i := 13; i < 20; i++ {
		coins = append(coins, coin(fmt.Sprintf("Coin%d", i), "Scrypt", 0))
	}
	require.Len(t, coins, 20)

	a := Score(coins)

	assert.Equal(t, 3.5, a.Score)
	assert.Equal(t, domain.RiskLevelLow, a.Level)
	assert.Equal(t, []string{FactorGoodDiversity, FactorEstablishedCoins, FactorUnlimitedSupplyShare}, a.Factors)
}

func TestScore_HighSupplyVariance(t *testing.T) {
	// One huge supply among many tiny ones pushes CV above 2.
	coins := []*domain.Coin{coin("Whale", "X11", 1e12)}
	for i := 0; i < 9; i++ {
		coins = append(coins, coin(fmt.Sprintf("Minnow%d", i), "Scrypt", 10))
	}

	a := Score(coins)

	// 5.0 + 1.5 (variance) + 1.0 (small) = 7.5
	assert.Equal(t, 7.5, a.Score)
	assert.Equal(t, domain.RiskLevelHigh, a.Level)
	assert.Equal(t, FactorHighSupplyVariance, a.Factors[0])
	assert.Equal(t, "🔴", a.Badge)
}

func TestScore_SingletonCluster(t *testing.T) {
	a := Score([]*domain.Coin{{Name: "AltCoin", Algorithm: "Scrypt", ProofType: "PoS", TotalMined: 1000, TotalSupply: 1000000}})

	// CV is 0 for a singleton, so no variance factor.
	assert.Equal(t, 6.5, a.Score)
	assert.NotContains(t, a.Factors, FactorHighSupplyVariance)
}

func TestScore_AllZeroSupply(t *testing.T) {
	coins := []*domain.Coin{
		coin("A", "X11", 0),
		coin("B", "X11", 0),
		coin("C", "X11", 0),
	}

	a := Score(coins)

	// 5.0 + 1.0 + 0.5 + 1.0 = 7.5
	assert.Equal(t, 7.5, a.Score)
	assert.GreaterOrEqual(t, a.Score, MinScore)
	assert.LessOrEqual(t, a.Score, MaxScore)
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	compositions := [][]*domain.Coin{
		nil,
		{coin("Bitcoin", "SHA-256", 21000000)},
		{coin("Monero", "CryptoNight", 0), coin("Dash", "X11", 0)},
		{coin("Whale", "X11", 1e15), coin("A", "X11", 0), coin("B", "X11", 0)},
	}

	for i, coins := range compositions {
		a := Score(coins)
		assert.GreaterOrEqual(t, a.Score, MinScore, "composition %d", i)
		assert.LessOrEqual(t, a.Score, MaxScore, "composition %d", i)
	}
}

func TestScore_Deterministic(t *testing.T) {
	coins := []*domain.Coin{coin("Litecoin", "Scrypt", 84000000), coin("Dogecoin", "Scrypt", 0)}
	first := Score(coins)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(coins))
	}
}
