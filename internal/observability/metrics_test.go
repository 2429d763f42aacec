package observability

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_SeparateRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	m.ProfilesGenerated.WithLabelValues("Low").Inc()
	m.ProfilesGenerated.WithLabelValues("Low").Inc()
	m.DatasetRows.Set(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProfilesGenerated.WithLabelValues("Low")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.DatasetRows))

	count, err := testutil.GatherAndCount(reg, "test_profile_generated_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordHelpers_UpdateDefaultMetrics(t *testing.T) {
	before := testutil.ToFloat64(DefaultMetrics.ReportsGenerated.WithLabelValues("markdown"))
	RecordReportGenerated("markdown")
	assert.Equal(t, before+1, testutil.ToFloat64(DefaultMetrics.ReportsGenerated.WithLabelValues("markdown")))

	errBefore := testutil.ToFloat64(DefaultMetrics.DBQueryErrors.WithLabelValues("postgres", "get_dataset"))
	RecordDBQuery("postgres", "get_dataset", 0.01, errors.New("boom"))
	RecordDBQuery("postgres", "get_dataset", 0.01, nil)
	assert.Equal(t, errBefore+1, testutil.ToFloat64(DefaultMetrics.DBQueryErrors.WithLabelValues("postgres", "get_dataset")))

	RecordDatasetLoaded(100, 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(DefaultMetrics.DatasetClusters))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	RecordPromptGenerated()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "crypto_insights_profile_prompts_generated_total"))
}
