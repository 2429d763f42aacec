package main

import (
	"context"
	"fmt"

	"crypto-cluster-insights/internal/config"
	"crypto-cluster-insights/internal/dataset"
	"crypto-cluster-insights/internal/idhash"
	"crypto-cluster-insights/internal/observability"
	"crypto-cluster-insights/internal/pipeline"
	"crypto-cluster-insights/internal/profile"
	"crypto-cluster-insights/internal/storage"
	chstore "crypto-cluster-insights/internal/storage/clickhouse"
	"crypto-cluster-insights/internal/storage/memory"
	"crypto-cluster-insights/internal/storage/migrations"
	pgstore "crypto-cluster-insights/internal/storage/postgres"
)

// stores holds the dataset source and snapshot sink selected by config.
type stores struct {
	coins     storage.CoinStore
	snapshots storage.ProfileSnapshotStore
	datasetID string
	cleanup   func()
}

// openStores creates the coin store for the configured dataset source.
// CSV and sample sources are staged in memory; postgres reads the stored dataset in place.
// When withSnapshots is set, snapshots go to ClickHouse if a DSN is configured, else to memory.
func (a *app) openStores(ctx context.Context, withSnapshots bool) (*stores, error) {
	s := &stores{cleanup: func() {}}
	var closers []func()
	s.cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch a.cfg.Dataset.Source {
	case config.SourceSample:
		store := memory.NewCoinStore()
		id, err := pipeline.LoadFixtures(ctx, store)
		if err != nil {
			return nil, fmt.Errorf("load sample dataset: %w", err)
		}
		s.coins, s.datasetID = store, id

	case config.SourceCSV:
		coins, err := dataset.LoadCSV(a.cfg.Dataset.CSVPath)
		if err != nil {
			observability.RecordDatasetError("csv")
			return nil, err
		}
		store := memory.NewCoinStore()
		id := idhash.ComputeDatasetID(coins)
		if err := store.InsertBulk(ctx, id, coins); err != nil {
			return nil, fmt.Errorf("stage csv dataset: %w", err)
		}
		s.coins, s.datasetID = store, id

	case config.SourcePostgres:
		pool, err := pgstore.NewPool(ctx, a.cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		s.coins = storage.InstrumentCoinStore(pgstore.NewCoinStore(pool), "postgres")
		s.datasetID = a.cfg.Dataset.DatasetID

	default:
		return nil, fmt.Errorf("unknown dataset source %q", a.cfg.Dataset.Source)
	}

	if withSnapshots {
		if dsn := a.cfg.Storage.ClickHouseDSN; dsn != "" {
			conn, err := migrations.RunClickhouseMigrations(ctx, dsn)
			if err != nil {
				s.cleanup()
				return nil, fmt.Errorf("prepare clickhouse: %w", err)
			}
			closers = append(closers, func() { conn.Close() })
			s.snapshots = storage.InstrumentSnapshotStore(chstore.NewProfileSnapshotStore(conn), "clickhouse")
		} else {
			a.log.Warn().Msg("no clickhouse dsn configured; snapshots are kept in memory for this run only")
			s.snapshots = memory.NewProfileSnapshotStore()
		}
	}

	return s, nil
}

// loadAnalyzer opens the configured dataset and builds an analyzer over it.
func (a *app) loadAnalyzer(ctx context.Context) (*profile.Analyzer, string, error) {
	s, err := a.openStores(ctx, false)
	if err != nil {
		return nil, "", err
	}
	defer s.cleanup()

	coins, err := s.coins.GetByDataset(ctx, s.datasetID)
	if err != nil {
		observability.RecordDatasetError("load")
		return nil, "", fmt.Errorf("load dataset %s: %w", s.datasetID, err)
	}

	analyzer, err := profile.NewAnalyzer(coins)
	if err != nil {
		observability.RecordDatasetError("schema")
		return nil, "", err
	}
	observability.RecordDatasetLoaded(analyzer.Len(), len(analyzer.ClusterIDs()))

	a.log.Debug().
		Str("source", a.cfg.Dataset.Source).
		Str("dataset_id", s.datasetID).
		Int("rows", analyzer.Len()).
		Int("clusters", len(analyzer.ClusterIDs())).
		Msg("dataset loaded")
	return analyzer, s.datasetID, nil
}
