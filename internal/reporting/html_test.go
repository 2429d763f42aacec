package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	got, err := RenderHTML(RenderMarkdown(sampleReport()))
	require.NoError(t, err)

	assert.Contains(t, got, "<!DOCTYPE html>")
	assert.Contains(t, got, "<h1>Cryptocurrency Cluster Analysis Report</h1>")
	assert.Contains(t, got, "<h3>Cluster 0: Zero</h3>")
	assert.Contains(t, got, "<strong>Risk Level</strong>")
	assert.Contains(t, got, "<hr>")
}
