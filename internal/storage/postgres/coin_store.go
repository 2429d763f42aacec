package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/storage"
)

// CoinStore implements storage.CoinStore using PostgreSQL.
type CoinStore struct {
	pool *Pool
}

// NewCoinStore creates a new CoinStore.
func NewCoinStore(pool *Pool) *CoinStore {
	return &CoinStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CoinStore = (*CoinStore)(nil)

const coinColumns = `name, algorithm, proof_type, total_mined, total_supply, pc1, pc2, pc3, cluster_id`

// InsertBulk stores all rows of a dataset atomically. Fails the entire batch if the dataset exists.
func (s *CoinStore) InsertBulk(ctx context.Context, datasetID string, coins []*domain.Coin) error {
	if datasetID == "" || len(coins) == 0 {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO coins (
			dataset_id, row_index, ` + coinColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for i, c := range coins {
		if c == nil {
			return storage.ErrInvalidInput
		}
		batch.Queue(query,
			datasetID,
			i,
			c.Name,
			c.Algorithm,
			c.ProofType,
			c.TotalMined,
			c.TotalSupply,
			c.PC1,
			c.PC2,
			c.PC3,
			c.ClusterID,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert coins in bulk: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByDataset retrieves all rows in order. Returns ErrNotFound if the dataset does not exist.
func (s *CoinStore) GetByDataset(ctx context.Context, datasetID string) ([]*domain.Coin, error) {
	query := `
		SELECT ` + coinColumns + `
		FROM coins
		WHERE dataset_id = $1
		ORDER BY row_index ASC
	`

	rows, err := s.pool.Query(ctx, query, datasetID)
	if err != nil {
		return nil, fmt.Errorf("get coins by dataset: %w", err)
	}
	defer rows.Close()

	coins, err := scanCoins(rows)
	if err != nil {
		return nil, err
	}
	if len(coins) == 0 {
		return nil, storage.ErrNotFound
	}
	return coins, nil
}

// GetByCluster retrieves the rows of one cluster in order.
func (s *CoinStore) GetByCluster(ctx context.Context, datasetID string, clusterID int) ([]*domain.Coin, error) {
	query := `
		SELECT ` + coinColumns + `
		FROM coins
		WHERE dataset_id = $1 AND cluster_id = $2
		ORDER BY row_index ASC
	`

	rows, err := s.pool.Query(ctx, query, datasetID, clusterID)
	if err != nil {
		return nil, fmt.Errorf("get coins by cluster: %w", err)
	}
	defer rows.Close()

	return scanCoins(rows)
}

// ListDatasets returns all dataset ids in ascending order.
func (s *CoinStore) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT dataset_id FROM coins ORDER BY dataset_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan dataset ids: %w", err)
	}
	return ids, nil
}

// scanCoins scans multiple rows into a slice of Coin.
func scanCoins(rows pgx.Rows) ([]*domain.Coin, error) {
	var coins []*domain.Coin

	for rows.Next() {
		var c domain.Coin
		err := rows.Scan(
			&c.Name,
			&c.Algorithm,
			&c.ProofType,
			&c.TotalMined,
			&c.TotalSupply,
			&c.PC1,
			&c.PC2,
			&c.PC3,
			&c.ClusterID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan coin: %w", err)
		}
		coins = append(coins, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coins: %w", err)
	}

	return coins, nil
}
