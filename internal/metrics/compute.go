package metrics

import (
	"math"
	"sort"

	"crypto-cluster-insights/internal/domain"
)

// computeFromCoins calculates statistics for the rows of one cluster.
// Rows must be in dataset order; tie-breaks in the frequency tables depend on it.
func computeFromCoins(clusterID int, coins []*domain.Coin) *domain.ClusterStatistics {
	n := len(coins)

	supplies := make([]float64, n)
	mined := make([]float64, n)
	algorithms := make([]string, n)
	proofs := make([]string, n)
	names := make([]string, n)
	members := make(map[string]struct{}, n)

	for i, c := range coins {
		supplies[i] = c.TotalSupply
		mined[i] = c.TotalMined
		algorithms[i] = c.Algorithm
		proofs[i] = c.ProofType
		names[i] = c.Name
		members[c.Name] = struct{}{}
	}

	avgSupply := computeMean(supplies)
	avgMined := computeMean(mined)

	return &domain.ClusterStatistics{
		ClusterID:     clusterID,
		Size:          n,
		AvgSupply:     avgSupply,
		AvgMined:      avgMined,
		SupplyStddev:  computeStddev(supplies, avgSupply),
		MinedStddev:   computeStddev(mined, avgMined),
		TopAlgorithms: TopCounts(algorithms, 3),
		TopProofTypes: TopCounts(proofs, 3),
		MemberNames:   names,
		Members:       members,
	}
}

// computeMean calculates arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
// A single value has no spread; returns 0 instead of NaN so risk arithmetic stays total.
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Mean is the exported form of computeMean.
func Mean(values []float64) float64 {
	return computeMean(values)
}

// Stddev returns the sample standard deviation of values, 0 for fewer than two values.
func Stddev(values []float64) float64 {
	return computeStddev(values, computeMean(values))
}

// TopCounts returns the n most frequent values, count DESC.
// Ties keep first-appearance order. n <= 0 returns the full table.
func TopCounts(values []string, n int) []domain.CountEntry {
	index := make(map[string]int)
	var entries []domain.CountEntry
	for _, v := range values {
		if i, ok := index[v]; ok {
			entries[i].Count++
			continue
		}
		index[v] = len(entries)
		entries = append(entries, domain.CountEntry{Key: v, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
