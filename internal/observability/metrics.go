// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Dataset metrics
	DatasetRows       prometheus.Gauge
	DatasetClusters   prometheus.Gauge
	DatasetsImported  prometheus.Counter
	DatasetLoadErrors *prometheus.CounterVec

	// Profile metrics
	ProfilesGenerated    *prometheus.CounterVec
	PromptsGenerated     prometheus.Counter
	ComparisonsGenerated prometheus.Counter

	// Report metrics
	ReportsGenerated   *prometheus.CounterVec
	ReportExportErrors prometheus.Counter

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec
	SnapshotsStored   prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulPipeline prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered with reg.
// A nil reg leaves the metrics unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "crypto_insights"
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Dataset metrics
		DatasetRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Number of rows in the loaded dataset",
		}),
		DatasetClusters: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "clusters",
			Help:      "Number of distinct clusters in the loaded dataset",
		}),
		DatasetsImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "imported_total",
			Help:      "Total number of datasets imported into storage",
		}),
		DatasetLoadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "load_errors_total",
			Help:      "Total number of dataset load failures by type",
		}, []string{"error_type"}),

		// Profile metrics
		ProfilesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "generated_total",
			Help:      "Total number of cluster profiles generated by risk level",
		}, []string{"risk_level"}),
		PromptsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "prompts_generated_total",
			Help:      "Total number of analyst prompts generated",
		}),
		ComparisonsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "comparisons_generated_total",
			Help:      "Total number of cluster comparison tables generated",
		}),

		// Report metrics
		ReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Total number of reports generated by format",
		}, []string{"format"}),
		ReportExportErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "export_errors_total",
			Help:      "Total number of failed report writes",
		}),

		// HTTP metrics
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),

		// Pipeline metrics
		PipelineRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"phase", "status"}),
		PipelineDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"phase"}),
		SnapshotsStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "snapshots_stored_total",
			Help:      "Total number of profile snapshots stored",
		}),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulPipeline: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_pipeline_timestamp",
			Help:      "Unix timestamp of last successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", prometheus.DefaultRegisterer)

// RecordDatasetLoaded sets the dataset gauges.
func RecordDatasetLoaded(rows, clusters int) {
	DefaultMetrics.DatasetRows.Set(float64(rows))
	DefaultMetrics.DatasetClusters.Set(float64(clusters))
}

// RecordDatasetImported increments the imported datasets counter.
func RecordDatasetImported() {
	DefaultMetrics.DatasetsImported.Inc()
}

// RecordDatasetError records a dataset load failure.
func RecordDatasetError(errorType string) {
	DefaultMetrics.DatasetLoadErrors.WithLabelValues(errorType).Inc()
}

// RecordProfileGenerated increments the profile counter for a risk level.
func RecordProfileGenerated(riskLevel string) {
	DefaultMetrics.ProfilesGenerated.WithLabelValues(riskLevel).Inc()
}

// RecordPromptGenerated increments the prompt counter.
func RecordPromptGenerated() {
	DefaultMetrics.PromptsGenerated.Inc()
}

// RecordComparisonGenerated increments the comparison counter.
func RecordComparisonGenerated() {
	DefaultMetrics.ComparisonsGenerated.Inc()
}

// RecordReportGenerated increments the report counter for a format (markdown, html, csv).
func RecordReportGenerated(format string) {
	DefaultMetrics.ReportsGenerated.WithLabelValues(format).Inc()
}

// RecordReportExportError increments the report write failure counter.
func RecordReportExportError() {
	DefaultMetrics.ReportExportErrors.Inc()
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(route, method, status string, seconds float64) {
	DefaultMetrics.HTTPRequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

// RecordSnapshotsStored adds n to the stored snapshots counter.
func RecordSnapshotsStored(n int) {
	DefaultMetrics.SnapshotsStored.Add(float64(n))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordPipelineRun records a pipeline run.
func RecordPipelineRun(phase, status string, durationSeconds float64) {
	DefaultMetrics.PipelineRunsTotal.WithLabelValues(phase, status).Inc()
	DefaultMetrics.PipelineDuration.WithLabelValues(phase).Observe(durationSeconds)
}

// RecordPipelineSuccess stamps the last successful pipeline gauge.
func RecordPipelineSuccess(unixSeconds int64) {
	DefaultMetrics.LastSuccessfulPipeline.Set(float64(unixSeconds))
}
