package profile

import (
	"sort"

	"crypto-cluster-insights/internal/domain"
)

// DefaultNotableCount is the number of notable coins kept per profile.
const DefaultNotableCount = 5

// NotableCoins ranks coins by completion ratio, highest first, and returns the top n.
// Equal ratios keep their row order. The input slice is not modified.
func NotableCoins(coins []*domain.Coin, n int) []domain.NotableCoin {
	if n <= 0 || len(coins) == 0 {
		return []domain.NotableCoin{}
	}

	ranked := make([]*domain.Coin, len(coins))
	copy(ranked, coins)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Completion() > ranked[j].Completion()
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	notable := make([]domain.NotableCoin, len(ranked))
	for i, c := range ranked {
		completion := c.Completion()
		notable[i] = domain.NotableCoin{
			Name:          c.Name,
			Algorithm:     c.Algorithm,
			ProofType:     c.ProofType,
			Mined:         formatWhole(c.TotalMined),
			Supply:        formatWhole(c.TotalSupply),
			Completion:    completion,
			CompletionPct: formatPct(completion),
		}
	}
	return notable
}
