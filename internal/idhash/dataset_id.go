package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"crypto-cluster-insights/internal/domain"
)

// ComputeDatasetID computes a deterministic dataset_id using SHA256.
// Formula: SHA256 over one line per row, in row order:
// name|algorithm|proof_type|total_mined|total_supply|cluster_id
// PC columns are excluded; they do not affect any profile.
// Returns hex-encoded hash (64 characters).
func ComputeDatasetID(coins []*domain.Coin) string {
	h := sha256.New()
	for _, c := range coins {
		fmt.Fprintf(h, "%s|%s|%s|%s|%s|%d\n",
			c.Name,
			c.Algorithm,
			c.ProofType,
			strconv.FormatFloat(c.TotalMined, 'g', -1, 64),
			strconv.FormatFloat(c.TotalSupply, 'g', -1, 64),
			c.ClusterID,
		)
	}
	return hex.EncodeToString(h.Sum(nil))
}
