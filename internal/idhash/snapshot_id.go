package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeSnapshotID computes a deterministic snapshot_id using SHA256.
// Formula: SHA256(run_id|dataset_id|cluster_id)
// Returns hex-encoded hash (64 characters).
func ComputeSnapshotID(runID, datasetID string, clusterID int) string {
	data := fmt.Sprintf("%s|%s|%d", runID, datasetID, clusterID)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
