package domain

// ProfileSnapshot is a persisted summary of one cluster profile.
// Corresponds to profile_snapshots table in ClickHouse.
type ProfileSnapshot struct {
	SnapshotID        string // idhash.ComputeSnapshotID(run_id, dataset_id, cluster_id)
	RunID             string // uuid shared by all clusters of one run
	DatasetID         string // idhash.ComputeDatasetID of the source table
	ClusterID         int
	Name              string
	Size              int
	Share             float64
	RiskScore         float64
	RiskLevel         RiskLevel
	DominantAlgorithm string
	DominantProofType string
	Allocation        string
	GeneratedAt       int64 // ms
}

// NewProfileSnapshot flattens a profile into a snapshot row.
func NewProfileSnapshot(snapshotID, runID, datasetID string, p *ClusterProfile, generatedAt int64) *ProfileSnapshot {
	return &ProfileSnapshot{
		SnapshotID:        snapshotID,
		RunID:             runID,
		DatasetID:         datasetID,
		ClusterID:         p.ClusterID,
		Name:              p.Name,
		Size:              p.Size,
		Share:             p.Share,
		RiskScore:         p.Risk.Score,
		RiskLevel:         p.Risk.Level,
		DominantAlgorithm: p.DominantAlgorithm,
		DominantProofType: p.DominantProofType,
		Allocation:        p.Insights.Allocation,
		GeneratedAt:       generatedAt,
	}
}
