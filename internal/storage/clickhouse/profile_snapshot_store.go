package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/storage"
)

// ProfileSnapshotStore implements storage.ProfileSnapshotStore using ClickHouse.
type ProfileSnapshotStore struct {
	conn *Conn
}

// NewProfileSnapshotStore creates a new ProfileSnapshotStore.
func NewProfileSnapshotStore(conn *Conn) *ProfileSnapshotStore {
	return &ProfileSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ProfileSnapshotStore = (*ProfileSnapshotStore)(nil)

const snapshotColumns = `
	snapshot_id, run_id, dataset_id, cluster_id, name, size, share,
	risk_score, risk_level, dominant_algorithm, dominant_proof_type, allocation, generated_at`

// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
func (s *ProfileSnapshotStore) Insert(ctx context.Context, snap *domain.ProfileSnapshot) error {
	return s.InsertBulk(ctx, []*domain.ProfileSnapshot{snap})
}

// InsertBulk adds multiple snapshots atomically. Fails entire batch on any duplicate.
func (s *ProfileSnapshotStore) InsertBulk(ctx context.Context, snapshots []*domain.ProfileSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(snapshots))
	for _, snap := range snapshots {
		if snap == nil || snap.SnapshotID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[snap.SnapshotID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[snap.SnapshotID] = struct{}{}
	}

	// MergeTree does not enforce uniqueness; check against existing rows
	for _, snap := range snapshots {
		exists, err := s.exists(ctx, snap.SnapshotID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `INSERT INTO profile_snapshots (`+snapshotColumns+`)`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, snap := range snapshots {
		err = batch.Append(
			snap.SnapshotID,
			snap.RunID,
			snap.DatasetID,
			int64(snap.ClusterID),
			snap.Name,
			uint32(snap.Size),
			snap.Share,
			snap.RiskScore,
			string(snap.RiskLevel),
			snap.DominantAlgorithm,
			snap.DominantProofType,
			snap.Allocation,
			uint64(snap.GeneratedAt),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByID retrieves a snapshot by its ID. Returns ErrNotFound if not exists.
func (s *ProfileSnapshotStore) GetByID(ctx context.Context, snapshotID string) (*domain.ProfileSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM profile_snapshots WHERE snapshot_id = ? LIMIT 1`

	rows, err := s.conn.Query(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query by id: %w", err)
	}
	defer rows.Close()

	snapshots, err := scanProfileSnapshots(rows)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, storage.ErrNotFound
	}
	return snapshots[0], nil
}

// GetByRun retrieves all snapshots of one run, ordered by cluster_id ASC.
func (s *ProfileSnapshotStore) GetByRun(ctx context.Context, runID string) ([]*domain.ProfileSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM profile_snapshots
		WHERE run_id = ?
		ORDER BY cluster_id ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run: %w", err)
	}
	defer rows.Close()

	return scanProfileSnapshots(rows)
}

// GetByDataset retrieves all snapshots of a dataset, ordered by generated_at ASC, cluster_id ASC.
func (s *ProfileSnapshotStore) GetByDataset(ctx context.Context, datasetID string) ([]*domain.ProfileSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM profile_snapshots
		WHERE dataset_id = ?
		ORDER BY generated_at ASC, cluster_id ASC, snapshot_id ASC
	`

	rows, err := s.conn.Query(ctx, query, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query by dataset: %w", err)
	}
	defer rows.Close()

	return scanProfileSnapshots(rows)
}

func (s *ProfileSnapshotStore) exists(ctx context.Context, snapshotID string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count() FROM profile_snapshots WHERE snapshot_id = ?`, snapshotID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanProfileSnapshots(rows driver.Rows) ([]*domain.ProfileSnapshot, error) {
	var result []*domain.ProfileSnapshot

	for rows.Next() {
		var (
			snap        domain.ProfileSnapshot
			clusterID   int64
			size        uint32
			riskLevel   string
			generatedAt uint64
		)
		err := rows.Scan(
			&snap.SnapshotID,
			&snap.RunID,
			&snap.DatasetID,
			&clusterID,
			&snap.Name,
			&size,
			&snap.Share,
			&snap.RiskScore,
			&riskLevel,
			&snap.DominantAlgorithm,
			&snap.DominantProofType,
			&snap.Allocation,
			&generatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan profile snapshot: %w", err)
		}
		snap.ClusterID = int(clusterID)
		snap.Size = int(size)
		snap.RiskLevel = domain.RiskLevel(riskLevel)
		snap.GeneratedAt = int64(generatedAt)
		result = append(result, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile snapshots: %w", err)
	}

	return result, nil
}
