package memory

import (
	"context"
	"sort"
	"sync"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/storage"
)

// ProfileSnapshotStore is an in-memory implementation of storage.ProfileSnapshotStore.
type ProfileSnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ProfileSnapshot // keyed by snapshot_id
}

// NewProfileSnapshotStore creates a new in-memory snapshot store.
func NewProfileSnapshotStore() *ProfileSnapshotStore {
	return &ProfileSnapshotStore{
		data: make(map[string]*domain.ProfileSnapshot),
	}
}

// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
func (s *ProfileSnapshotStore) Insert(_ context.Context, snap *domain.ProfileSnapshot) error {
	if snap == nil || snap.SnapshotID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[snap.SnapshotID]; exists {
		return storage.ErrDuplicateKey
	}

	snapCopy := *snap
	s.data[snap.SnapshotID] = &snapCopy
	return nil
}

// InsertBulk adds multiple snapshots atomically. Fails entire batch on any duplicate.
func (s *ProfileSnapshotStore) InsertBulk(_ context.Context, snapshots []*domain.ProfileSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check for duplicates first (atomic: all or nothing)
	seen := make(map[string]struct{}, len(snapshots))
	for _, snap := range snapshots {
		if snap == nil || snap.SnapshotID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[snap.SnapshotID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := seen[snap.SnapshotID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[snap.SnapshotID] = struct{}{}
	}

	for _, snap := range snapshots {
		snapCopy := *snap
		s.data[snap.SnapshotID] = &snapCopy
	}
	return nil
}

// GetByID retrieves a snapshot by its ID. Returns ErrNotFound if not exists.
func (s *ProfileSnapshotStore) GetByID(_ context.Context, snapshotID string) (*domain.ProfileSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[snapshotID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	snapCopy := *snap
	return &snapCopy, nil
}

// GetByRun retrieves all snapshots of one run, ordered by cluster_id ASC.
func (s *ProfileSnapshotStore) GetByRun(_ context.Context, runID string) ([]*domain.ProfileSnapshot, error) {
	result := s.filter(func(snap *domain.ProfileSnapshot) bool { return snap.RunID == runID })
	sort.Slice(result, func(i, j int) bool {
		return result[i].ClusterID < result[j].ClusterID
	})
	return result, nil
}

// GetByDataset retrieves all snapshots of a dataset, ordered by generated_at ASC, cluster_id ASC.
func (s *ProfileSnapshotStore) GetByDataset(_ context.Context, datasetID string) ([]*domain.ProfileSnapshot, error) {
	result := s.filter(func(snap *domain.ProfileSnapshot) bool { return snap.DatasetID == datasetID })
	sort.Slice(result, func(i, j int) bool {
		if result[i].GeneratedAt != result[j].GeneratedAt {
			return result[i].GeneratedAt < result[j].GeneratedAt
		}
		if result[i].ClusterID != result[j].ClusterID {
			return result[i].ClusterID < result[j].ClusterID
		}
		return result[i].SnapshotID < result[j].SnapshotID
	})
	return result, nil
}

func (s *ProfileSnapshotStore) filter(keep func(*domain.ProfileSnapshot) bool) []*domain.ProfileSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ProfileSnapshot
	for _, snap := range s.data {
		if keep(snap) {
			snapCopy := *snap
			result = append(result, &snapCopy)
		}
	}
	return result
}

// Verify interface compliance at compile time.
var _ storage.ProfileSnapshotStore = (*ProfileSnapshotStore)(nil)
