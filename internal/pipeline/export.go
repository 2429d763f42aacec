// Package pipeline runs the batch export: load a stored dataset, profile every cluster,
// write report files and append profile snapshots.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/idhash"
	"crypto-cluster-insights/internal/metrics"
	"crypto-cluster-insights/internal/observability"
	"crypto-cluster-insights/internal/profile"
	"crypto-cluster-insights/internal/reporting"
	"crypto-cluster-insights/internal/storage"
)

// Output file names.
const (
	ReportFile      = "CLUSTER_REPORT.md"
	ReportHTMLFile  = "CLUSTER_REPORT.html"
	ComparisonFile  = "CLUSTER_COMPARISON.csv"
	DataQualityFile = "DATA_QUALITY.md"
)

const phaseExport = "export"

// Result describes one completed run.
type Result struct {
	RunID       string
	DatasetID   string
	Rows        int
	Clusters    int
	Files       []string // paths written, in write order
	Snapshots   int
	Sufficiency *SufficiencyResult // nil when no checker is configured
}

// ExportPipeline orchestrates profiling and report export for one dataset.
type ExportPipeline struct {
	coinStore     storage.CoinStore
	snapshotStore storage.ProfileSnapshotStore // optional
	checker       *SufficiencyChecker          // optional
	strict        bool
	datasetID     string
	outputDir     string
	html          bool
	clock         func() time.Time
	newRunID      func() string
	log           zerolog.Logger
}

// NewExportPipeline creates a pipeline reading datasetID from coinStore and writing into outputDir.
func NewExportPipeline(coinStore storage.CoinStore, datasetID, outputDir string) *ExportPipeline {
	return &ExportPipeline{
		coinStore: coinStore,
		datasetID: datasetID,
		outputDir: outputDir,
		clock:     func() time.Time { return time.Now().UTC() },
		newRunID:  uuid.NewString,
		log:       zerolog.Nop(),
	}
}

// WithSnapshotStore enables snapshot persistence.
func (p *ExportPipeline) WithSnapshotStore(s storage.ProfileSnapshotStore) *ExportPipeline {
	p.snapshotStore = s
	return p
}

// WithSufficiencyChecker adds data sufficiency checks. When strict, a failed check aborts the run
// with ErrInsufficientData after DATA_QUALITY.md is written.
func (p *ExportPipeline) WithSufficiencyChecker(c *SufficiencyChecker, strict bool) *ExportPipeline {
	p.checker = c
	p.strict = strict
	return p
}

// WithHTML also writes the report as HTML.
func (p *ExportPipeline) WithHTML(enabled bool) *ExportPipeline {
	p.html = enabled
	return p
}

// WithClock sets a custom clock function for deterministic output.
func (p *ExportPipeline) WithClock(clock func() time.Time) *ExportPipeline {
	p.clock = clock
	return p
}

// WithRunIDFunc overrides run id generation.
func (p *ExportPipeline) WithRunIDFunc(f func() string) *ExportPipeline {
	p.newRunID = f
	return p
}

// WithLogger sets the logger.
func (p *ExportPipeline) WithLogger(log zerolog.Logger) *ExportPipeline {
	p.log = log
	return p
}

// Run executes the pipeline and writes:
// - DATA_QUALITY.md (when a checker is configured)
// - CLUSTER_REPORT.md
// - CLUSTER_REPORT.html (when enabled)
// - CLUSTER_COMPARISON.csv
func (p *ExportPipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res, err := p.run(ctx)
	status := "success"
	if err != nil {
		status = "error"
	}
	observability.RecordPipelineRun(phaseExport, status, time.Since(start).Seconds())
	if err != nil {
		p.log.Error().Err(err).Str("dataset_id", p.datasetID).Msg("export failed")
		return nil, err
	}

	observability.RecordPipelineSuccess(p.clock().Unix())
	p.log.Info().
		Str("run_id", res.RunID).
		Str("dataset_id", res.DatasetID).
		Int("rows", res.Rows).
		Int("clusters", res.Clusters).
		Int("snapshots", res.Snapshots).
		Dur("duration", time.Since(start)).
		Msg("export complete")
	return res, nil
}

func (p *ExportPipeline) run(ctx context.Context) (*Result, error) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// 1. Load dataset
	coins, err := p.coinStore.GetByDataset(ctx, p.datasetID)
	if err != nil {
		observability.RecordDatasetError("load")
		return nil, fmt.Errorf("load dataset %s: %w", p.datasetID, err)
	}

	res := &Result{
		RunID:     p.newRunID(),
		DatasetID: p.datasetID,
		Rows:      len(coins),
	}

	// 2. Sufficiency checks
	if p.checker != nil {
		res.Sufficiency = p.checker.Check(coins)
		path, err := p.write(DataQualityFile, RenderSufficiencyMarkdown(res.Sufficiency))
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)

		if !res.Sufficiency.AllPass {
			p.log.Warn().Strs("errors", res.Sufficiency.Errors).Msg("dataset failed sufficiency checks")
			if p.strict {
				return nil, ErrInsufficientData
			}
		}
	}

	// 3. Profile
	analyzer, err := profile.NewAnalyzer(coins)
	if err != nil {
		observability.RecordDatasetError("schema")
		return nil, fmt.Errorf("build analyzer: %w", err)
	}
	analyzer.WithClock(p.clock)
	res.Clusters = len(analyzer.ClusterIDs())
	observability.RecordDatasetLoaded(res.Rows, res.Clusters)

	report, err := analyzer.GenerateReport()
	if err != nil {
		return nil, err
	}
	for _, prof := range report.Profiles {
		observability.RecordProfileGenerated(string(prof.Risk.Level))
	}

	// 4. Markdown report
	md := reporting.RenderMarkdown(report)
	path, err := p.write(ReportFile, md)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)
	observability.RecordReportGenerated("markdown")

	// 5. HTML report
	if p.html {
		html, err := reporting.RenderHTML(md)
		if err != nil {
			return nil, err
		}
		path, err := p.write(ReportHTMLFile, html)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)
		observability.RecordReportGenerated("html")
	}

	// 6. Comparison CSV
	rows, err := profile.CompareClusters(analyzer, analyzer.ClusterIDs())
	if err != nil {
		return nil, err
	}
	csv, err := reporting.RenderComparisonCSV(rows)
	if err != nil {
		return nil, err
	}
	path, err = p.write(ComparisonFile, csv)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)
	observability.RecordReportGenerated("csv")

	// 7. Snapshots
	if p.snapshotStore != nil {
		snapshots := buildSnapshots(res.RunID, p.datasetID, report)
		if err := p.snapshotStore.InsertBulk(ctx, snapshots); err != nil {
			return nil, fmt.Errorf("store snapshots: %w", err)
		}
		res.Snapshots = len(snapshots)
		observability.RecordSnapshotsStored(len(snapshots))
	}

	return res, nil
}

func (p *ExportPipeline) write(name, content string) (string, error) {
	path := filepath.Join(p.outputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		observability.RecordReportExportError()
		return "", &profile.ExportError{Path: path, Err: err}
	}
	return path, nil
}

func buildSnapshots(runID, datasetID string, report *reporting.Report) []*domain.ProfileSnapshot {
	generatedAt := report.GeneratedAt.UnixMilli()
	out := make([]*domain.ProfileSnapshot, len(report.Profiles))
	for i, prof := range report.Profiles {
		id := idhash.ComputeSnapshotID(runID, datasetID, prof.ClusterID)
		out[i] = domain.NewProfileSnapshot(id, runID, datasetID, prof, generatedAt)
	}
	return out
}

// ClusterCount returns the number of distinct clusters in coins.
func ClusterCount(coins []*domain.Coin) int {
	return len(metrics.GroupByCluster(coins))
}
