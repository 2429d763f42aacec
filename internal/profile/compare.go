package profile

import "crypto-cluster-insights/internal/domain"

// CompareClusters builds one comparison row per requested cluster, in the order given.
// Fails on the first unknown id.
func CompareClusters(a *Analyzer, ids []int) ([]domain.ComparisonRow, error) {
	rows := make([]domain.ComparisonRow, 0, len(ids))
	for _, id := range ids {
		p, err := a.GenerateClusterProfile(id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.ComparisonRow{
			ClusterID:         id,
			Name:              p.Name,
			Size:              p.Size,
			RiskLevel:         p.Risk.Level,
			RiskScore:         p.Risk.Score,
			DominantAlgorithm: p.DominantAlgorithm,
			DominantProofType: p.DominantProofType,
			Allocation:        p.Insights.Allocation,
		})
	}
	return rows, nil
}
