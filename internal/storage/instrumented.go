package storage

import (
	"context"
	"errors"
	"time"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/observability"
)

// InstrumentCoinStore wraps s so every call is recorded as a DB query under the database label.
func InstrumentCoinStore(s CoinStore, database string) CoinStore {
	return &instrumentedCoinStore{next: s, database: database}
}

// InstrumentSnapshotStore wraps s so every call is recorded as a DB query under the database label.
func InstrumentSnapshotStore(s ProfileSnapshotStore, database string) ProfileSnapshotStore {
	return &instrumentedSnapshotStore{next: s, database: database}
}

func record(database, operation string, start time.Time, err error) {
	// A miss is a normal answer, not a failed query.
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	observability.RecordDBQuery(database, operation, time.Since(start).Seconds(), err)
}

type instrumentedCoinStore struct {
	next     CoinStore
	database string
}

func (s *instrumentedCoinStore) InsertBulk(ctx context.Context, datasetID string, coins []*domain.Coin) error {
	start := time.Now()
	err := s.next.InsertBulk(ctx, datasetID, coins)
	record(s.database, "coins_insert_bulk", start, err)
	return err
}

func (s *instrumentedCoinStore) GetByDataset(ctx context.Context, datasetID string) ([]*domain.Coin, error) {
	start := time.Now()
	coins, err := s.next.GetByDataset(ctx, datasetID)
	record(s.database, "coins_get_by_dataset", start, err)
	return coins, err
}

func (s *instrumentedCoinStore) GetByCluster(ctx context.Context, datasetID string, clusterID int) ([]*domain.Coin, error) {
	start := time.Now()
	coins, err := s.next.GetByCluster(ctx, datasetID, clusterID)
	record(s.database, "coins_get_by_cluster", start, err)
	return coins, err
}

func (s *instrumentedCoinStore) ListDatasets(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := s.next.ListDatasets(ctx)
	record(s.database, "coins_list_datasets", start, err)
	return ids, err
}

type instrumentedSnapshotStore struct {
	next     ProfileSnapshotStore
	database string
}

func (s *instrumentedSnapshotStore) Insert(ctx context.Context, snap *domain.ProfileSnapshot) error {
	start := time.Now()
	err := s.next.Insert(ctx, snap)
	record(s.database, "snapshots_insert", start, err)
	return err
}

func (s *instrumentedSnapshotStore) InsertBulk(ctx context.Context, snapshots []*domain.ProfileSnapshot) error {
	start := time.Now()
	err := s.next.InsertBulk(ctx, snapshots)
	record(s.database, "snapshots_insert_bulk", start, err)
	return err
}

func (s *instrumentedSnapshotStore) GetByID(ctx context.Context, snapshotID string) (*domain.ProfileSnapshot, error) {
	start := time.Now()
	snap, err := s.next.GetByID(ctx, snapshotID)
	record(s.database, "snapshots_get_by_id", start, err)
	return snap, err
}

func (s *instrumentedSnapshotStore) GetByRun(ctx context.Context, runID string) ([]*domain.ProfileSnapshot, error) {
	start := time.Now()
	snaps, err := s.next.GetByRun(ctx, runID)
	record(s.database, "snapshots_get_by_run", start, err)
	return snaps, err
}

func (s *instrumentedSnapshotStore) GetByDataset(ctx context.Context, datasetID string) ([]*domain.ProfileSnapshot, error) {
	start := time.Now()
	snaps, err := s.next.GetByDataset(ctx, datasetID)
	record(s.database, "snapshots_get_by_dataset", start, err)
	return snaps, err
}
