package memory

import (
	"context"
	"sort"
	"sync"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/storage"
)

// CoinStore is an in-memory implementation of storage.CoinStore.
type CoinStore struct {
	mu   sync.RWMutex
	data map[string][]domain.Coin // keyed by dataset_id, row order
}

// NewCoinStore creates a new in-memory coin store.
func NewCoinStore() *CoinStore {
	return &CoinStore{
		data: make(map[string][]domain.Coin),
	}
}

// InsertBulk stores all rows of a dataset. Returns ErrDuplicateKey if the dataset exists.
func (s *CoinStore) InsertBulk(_ context.Context, datasetID string, coins []*domain.Coin) error {
	if datasetID == "" || len(coins) == 0 {
		return storage.ErrInvalidInput
	}
	for _, c := range coins {
		if c == nil {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[datasetID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store copies to prevent external mutation
	rows := make([]domain.Coin, len(coins))
	for i, c := range coins {
		rows[i] = *c
	}
	s.data[datasetID] = rows
	return nil
}

// GetByDataset retrieves all rows in order. Returns ErrNotFound if the dataset does not exist.
func (s *CoinStore) GetByDataset(_ context.Context, datasetID string) ([]*domain.Coin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, exists := s.data[datasetID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	result := make([]*domain.Coin, len(rows))
	for i := range rows {
		coinCopy := rows[i]
		result[i] = &coinCopy
	}
	return result, nil
}

// GetByCluster retrieves the rows of one cluster in order.
func (s *CoinStore) GetByCluster(_ context.Context, datasetID string, clusterID int) ([]*domain.Coin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Coin
	for _, c := range s.data[datasetID] {
		if c.ClusterID == clusterID {
			coinCopy := c
			result = append(result, &coinCopy)
		}
	}
	return result, nil
}

// ListDatasets returns all dataset ids in ascending order.
func (s *CoinStore) ListDatasets(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Verify interface compliance at compile time.
var _ storage.CoinStore = (*CoinStore)(nil)
