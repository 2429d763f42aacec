package reporting

import (
	"time"

	"crypto-cluster-insights/internal/domain"
)

// Report is the analysis report model, rendered by RenderMarkdown.
type Report struct {
	// Metadata
	GeneratedAt  time.Time
	TotalCoins   int
	ClusterCount int

	// Cluster profiles ordered by cluster id ascending
	Profiles []*domain.ClusterProfile

	// Market overview
	Summary domain.MarketSummary
}

// Report limits.
const (
	reportNotableCount   = 3
	reportAlgorithmCount = 5
)
