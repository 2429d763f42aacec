package storage

import (
	"context"

	"crypto-cluster-insights/internal/domain"
)

// CoinStore provides access to clustered coin tables, keyed by dataset_id.
// A dataset is written once and never updated.
type CoinStore interface {
	// InsertBulk stores all rows of a dataset atomically, preserving row order.
	// Returns ErrDuplicateKey if the dataset already exists, ErrInvalidInput if coins is empty.
	InsertBulk(ctx context.Context, datasetID string, coins []*domain.Coin) error

	// GetByDataset retrieves all rows in their original order. Returns ErrNotFound if the dataset does not exist.
	GetByDataset(ctx context.Context, datasetID string) ([]*domain.Coin, error)

	// GetByCluster retrieves the rows of one cluster in their original order.
	GetByCluster(ctx context.Context, datasetID string, clusterID int) ([]*domain.Coin, error)

	// ListDatasets returns all stored dataset ids in ascending order.
	ListDatasets(ctx context.Context) ([]string, error)
}

// ProfileSnapshotStore provides access to profile_snapshots storage.
type ProfileSnapshotStore interface {
	// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
	Insert(ctx context.Context, s *domain.ProfileSnapshot) error

	// InsertBulk adds multiple snapshots atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, snapshots []*domain.ProfileSnapshot) error

	// GetByID retrieves a snapshot by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, snapshotID string) (*domain.ProfileSnapshot, error)

	// GetByRun retrieves all snapshots of one run, ordered by cluster_id ASC.
	GetByRun(ctx context.Context, runID string) ([]*domain.ProfileSnapshot, error)

	// GetByDataset retrieves all snapshots of a dataset, ordered by generated_at ASC, cluster_id ASC.
	GetByDataset(ctx context.Context, datasetID string) ([]*domain.ProfileSnapshot, error)
}
