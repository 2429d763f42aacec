package domain

// Coin represents one row of the clustered cryptocurrency table.
// Rows are produced by the external K-means + PCA pipeline and are never mutated.
type Coin struct {
	Name        string  `json:"name" validate:"required"`
	Algorithm   string  `json:"algorithm" validate:"required"`
	ProofType   string  `json:"proof_type" validate:"required"`
	TotalMined  float64 `json:"total_mined" validate:"finite,gte=0"`
	TotalSupply float64 `json:"total_supply" validate:"finite,gte=0"` // 0 means uncapped or unknown supply
	PC1         float64 `json:"pc1" validate:"finite"`
	PC2         float64 `json:"pc2" validate:"finite"`
	PC3         float64 `json:"pc3" validate:"finite"`
	ClusterID   int     `json:"cluster_id"` // opaque label from the clustering pipeline
}

// Completion returns mined / (supply + 1).
// The +1 keeps zero-supply coins finite; it changes ranking and must not be removed.
func (c *Coin) Completion() float64 {
	return c.TotalMined / (c.TotalSupply + 1)
}
