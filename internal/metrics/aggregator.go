package metrics

import (
	"errors"
	"sort"

	"crypto-cluster-insights/internal/domain"
)

// ErrEmptyDataset is returned when there are no rows to aggregate.
var ErrEmptyDataset = errors.New("empty dataset: no rows to aggregate")

// Aggregate groups coins by ClusterID and computes statistics for every cluster present.
// Returns ErrEmptyDataset if coins is empty.
func Aggregate(coins []*domain.Coin) (map[int]*domain.ClusterStatistics, error) {
	if len(coins) == 0 {
		return nil, ErrEmptyDataset
	}

	groups := GroupByCluster(coins)

	stats := make(map[int]*domain.ClusterStatistics, len(groups))
	for clusterID, rows := range groups {
		stats[clusterID] = computeFromCoins(clusterID, rows)
	}
	return stats, nil
}

// GroupByCluster partitions coins by ClusterID, keeping dataset order inside each group.
func GroupByCluster(coins []*domain.Coin) map[int][]*domain.Coin {
	groups := make(map[int][]*domain.Coin)
	for _, c := range coins {
		groups[c.ClusterID] = append(groups[c.ClusterID], c)
	}
	return groups
}

// ClusterIDs returns the cluster ids of stats in ascending order.
func ClusterIDs(stats map[int]*domain.ClusterStatistics) []int {
	ids := make([]int, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
