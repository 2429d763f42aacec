package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"crypto-cluster-insights/internal/dataset"
	"crypto-cluster-insights/internal/idhash"
	"crypto-cluster-insights/internal/observability"
	"crypto-cluster-insights/internal/pipeline"
	"crypto-cluster-insights/internal/storage"
	"crypto-cluster-insights/internal/storage/migrations"
	pgstore "crypto-cluster-insights/internal/storage/postgres"
)

func newImportCmd(a *app) *cobra.Command {
	var csvPath, datasetID string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a clustered CSV into Postgres and print its dataset id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.cfg.Storage.PostgresDSN == "" {
				return errors.New("postgres dsn is required (storage.postgres_dsn or CCI_POSTGRES_DSN)")
			}

			coins, err := dataset.LoadCSV(csvPath)
			if err != nil {
				observability.RecordDatasetError("csv")
				return err
			}
			if datasetID == "" {
				datasetID = idhash.ComputeDatasetID(coins)
			}

			pool, err := pgstore.NewPool(ctx, a.cfg.Storage.PostgresDSN)
			if err != nil {
				return fmt.Errorf("connect to postgres: %w", err)
			}
			defer pool.Close()

			if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			store := storage.InstrumentCoinStore(pgstore.NewCoinStore(pool), "postgres")
			err = store.InsertBulk(ctx, datasetID, coins)
			switch {
			case errors.Is(err, storage.ErrDuplicateKey):
				a.log.Info().Str("dataset_id", datasetID).Msg("dataset already imported")
			case err != nil:
				return fmt.Errorf("import dataset: %w", err)
			default:
				observability.RecordDatasetImported()
				a.log.Info().
					Str("dataset_id", datasetID).
					Int("rows", len(coins)).
					Int("clusters", pipeline.ClusterCount(coins)).
					Msg("dataset imported")
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), datasetID)
			return err
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "clustered CSV file")
	cmd.Flags().StringVar(&datasetID, "dataset-id", "", "dataset id (default: content fingerprint)")
	cmd.MarkFlagRequired("csv")
	return cmd
}
