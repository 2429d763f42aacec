package profile

import (
	"fmt"

	"crypto-cluster-insights/internal/metrics"
)

// ErrEmptyDataset is returned when an analyzer is built from zero rows.
var ErrEmptyDataset = metrics.ErrEmptyDataset

// SchemaError reports a table that does not match the coin schema:
// a missing column or a row value that is absent or invalid.
type SchemaError struct {
	Row    int    // 1-based data row, 0 when the error concerns the header
	Column string // column or field name
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema: row %d column %q: %s", e.Row, e.Column, e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// UnknownClusterError is returned when a requested cluster has no rows.
type UnknownClusterError struct {
	ClusterID int
}

func (e *UnknownClusterError) Error() string {
	return fmt.Sprintf("cluster %d not found", e.ClusterID)
}

// ExportError wraps a failure to write the analysis report.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export report to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
