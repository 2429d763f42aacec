package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"crypto-cluster-insights/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			analyzer, datasetID, err := a.loadAnalyzer(ctx)
			if err != nil {
				return err
			}

			cfg := server.DefaultConfig()
			cfg.Addr = a.cfg.HTTP.Addr
			if addr != "" {
				cfg.Addr = addr
			}
			cfg.ReadTimeout = a.cfg.HTTP.ReadTimeout
			cfg.WriteTimeout = a.cfg.HTTP.WriteTimeout

			srv := server.New(analyzer, cfg).
				WithLogger(a.log).
				WithScenarios(a.cfg.ROIScenarios).
				WithDatasetID(datasetID)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info().Dur("timeout", a.cfg.HTTP.ShutdownTimeout).Msg("received signal, shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown: %w", err)
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}
