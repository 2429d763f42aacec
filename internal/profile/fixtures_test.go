package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crypto-cluster-insights/internal/domain"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// threeRowCoins is the reference dataset: two majors in cluster 0, one PoS altcoin in cluster 1.
func threeRowCoins() []*domain.Coin {
	return []*domain.Coin{
		{Name: "Bitcoin", Algorithm: "SHA-256", ProofType: "PoW", TotalMined: 17927175, TotalSupply: 21000000, ClusterID: 0},
		{Name: "Ethereum", Algorithm: "Ethash", ProofType: "PoW", TotalMined: 107684222, TotalSupply: 0, ClusterID: 0},
		{Name: "AltCoin", Algorithm: "Scrypt", ProofType: "PoS", TotalMined: 1000, TotalSupply: 1000000, ClusterID: 1},
	}
}

func newTestAnalyzer(t *testing.T, coins []*domain.Coin) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(coins)
	require.NoError(t, err)
	return a.WithClock(func() time.Time { return fixedTime })
}

func statsFor(t *testing.T, coins []*domain.Coin) *domain.ClusterStatistics {
	t.Helper()
	a := newTestAnalyzer(t, coins)
	s, err := a.Statistics(coins[0].ClusterID)
	require.NoError(t, err)
	return &s
}
