package pipeline

import (
	"context"
	"errors"

	"crypto-cluster-insights/internal/dataset"
	"crypto-cluster-insights/internal/idhash"
	"crypto-cluster-insights/internal/storage"
)

// LoadFixtures stores the built-in sample dataset and returns its dataset id.
// Loading the same sample twice is not an error.
func LoadFixtures(ctx context.Context, store storage.CoinStore) (string, error) {
	coins := dataset.SampleDataset()
	datasetID := idhash.ComputeDatasetID(coins)

	if err := store.InsertBulk(ctx, datasetID, coins); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		return "", err
	}
	return datasetID, nil
}
