// Package profile turns a clustered coin table into cluster profiles, market summaries,
// comparison rows, analyst prompts and the Markdown analysis report.
package profile

import (
	"fmt"
	"os"
	"time"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/metrics"
	"crypto-cluster-insights/internal/reporting"
	"crypto-cluster-insights/internal/risk"
)

// Analyzer answers profile queries over one immutable dataset.
// Safe for concurrent use once constructed.
type Analyzer struct {
	coins  []*domain.Coin
	groups map[int][]*domain.Coin
	stats  map[int]*domain.ClusterStatistics
	ids    []int
	now    func() time.Time // Injectable clock for deterministic output
}

// NewAnalyzer validates coins and computes per-cluster statistics once.
// Rows are copied; later changes to the caller's slice are not observed.
func NewAnalyzer(coins []*domain.Coin) (*Analyzer, error) {
	if len(coins) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := ValidateCoins(coins); err != nil {
		return nil, err
	}

	owned := make([]*domain.Coin, len(coins))
	for i, c := range coins {
		cp := *c
		owned[i] = &cp
	}

	stats, err := metrics.Aggregate(owned)
	if err != nil {
		return nil, fmt.Errorf("aggregate clusters: %w", err)
	}

	return &Analyzer{
		coins:  owned,
		groups: metrics.GroupByCluster(owned),
		stats:  stats,
		ids:    metrics.ClusterIDs(stats),
		now:    time.Now,
	}, nil
}

// WithClock sets a custom clock function for deterministic output.
// Call before sharing the analyzer.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Len returns the number of rows in the dataset.
func (a *Analyzer) Len() int { return len(a.coins) }

// ClusterIDs returns the distinct cluster ids in ascending order.
func (a *Analyzer) ClusterIDs() []int {
	out := make([]int, len(a.ids))
	copy(out, a.ids)
	return out
}

// Coins returns a copy of the dataset rows in their original order.
func (a *Analyzer) Coins() []domain.Coin {
	out := make([]domain.Coin, len(a.coins))
	for i, c := range a.coins {
		out[i] = *c
	}
	return out
}

// Statistics returns a copy of the precomputed statistics of one cluster.
func (a *Analyzer) Statistics(clusterID int) (domain.ClusterStatistics, error) {
	s, ok := a.stats[clusterID]
	if !ok {
		return domain.ClusterStatistics{}, &UnknownClusterError{ClusterID: clusterID}
	}
	return s.Clone(), nil
}

// GenerateClusterProfile builds the full profile of one cluster.
func (a *Analyzer) GenerateClusterProfile(clusterID int) (*domain.ClusterProfile, error) {
	stats, ok := a.stats[clusterID]
	if !ok {
		return nil, &UnknownClusterError{ClusterID: clusterID}
	}
	rows := a.groups[clusterID]

	character := Characterize(stats)
	assessment := risk.Score(rows)
	share := float64(stats.Size) / float64(len(a.coins))

	volatility := "Low"
	if stats.SupplyStddev > stats.AvgSupply {
		volatility = "High"
	}

	return &domain.ClusterProfile{
		ClusterID:         clusterID,
		Name:              character.Name,
		Description:       character.Description,
		Size:              stats.Size,
		Share:             share,
		Percentage:        formatPct(share),
		KeyFeatures:       character.Features,
		DominantAlgorithm: stats.DominantAlgorithm(),
		DominantProofType: stats.DominantProofType(),
		Risk:              assessment,
		NotableCoins:      NotableCoins(rows, DefaultNotableCount),
		Insights:          ComposeInsights(stats, assessment),
		Statistics: domain.ProfileStatistics{
			AvgSupply:        formatWhole(stats.AvgSupply),
			AvgMined:         formatWhole(stats.AvgMined),
			SupplyVolatility: volatility,
		},
	}, nil
}

// GenerateReport assembles the report model for every cluster, ascending by id.
func (a *Analyzer) GenerateReport() (*reporting.Report, error) {
	return reporting.NewGenerator(a).WithClock(a.now).Generate()
}

// ExportAnalysisReport renders the Markdown report, writes it to path and returns it.
// An empty path uses DefaultReportFilename in the working directory.
func (a *Analyzer) ExportAnalysisReport(path string) (string, error) {
	report, err := a.GenerateReport()
	if err != nil {
		return "", err
	}
	if path == "" {
		path = DefaultReportFilename(report.GeneratedAt)
	}

	md := reporting.RenderMarkdown(report)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}
	return md, nil
}

// DefaultReportFilename returns crypto_analysis_report_YYYYMMDD_HHMMSS.md for t.
func DefaultReportFilename(t time.Time) string {
	return fmt.Sprintf("crypto_analysis_report_%s.md", t.Format("20060102_150405"))
}
