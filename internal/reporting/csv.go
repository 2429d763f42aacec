package reporting

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"crypto-cluster-insights/internal/domain"
)

var comparisonHeader = []string{
	"cluster_id", "name", "size", "risk_level", "risk_score",
	"algorithm", "proof", "allocation",
}

// RenderComparisonCSV renders comparison rows as CSV string, header first.
func RenderComparisonCSV(rows []domain.ComparisonRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(comparisonHeader); err != nil {
		return "", err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.ClusterID),
			r.Name,
			strconv.Itoa(r.Size),
			string(r.RiskLevel),
			strconv.FormatFloat(r.RiskScore, 'f', 1, 64),
			r.DominantAlgorithm,
			r.DominantProofType,
			r.Allocation,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
