// Command cryptoinsights profiles clustered cryptocurrency tables: cluster profiles, market
// summaries, comparisons, analyst prompts, Markdown/HTML reports, ROI projections, dataset
// import into Postgres, snapshot export to ClickHouse and a read-only HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"crypto-cluster-insights/internal/config"
	"crypto-cluster-insights/internal/logging"
)

const version = "v1.0.0"

// app carries state shared by every subcommand.
type app struct {
	configPath string
	envFile    string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "cryptoinsights",
		Short:         "Profile and risk-score clustered cryptocurrency datasets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "env file loaded before CCI_* overrides (empty to skip)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newProfileCmd(a),
		newSummaryCmd(a),
		newCompareCmd(a),
		newReportCmd(a),
		newPromptCmd(a),
		newROICmd(a),
		newImportCmd(a),
		newSnapshotCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logging.New(cfg.Log.Level, logging.IsPretty(cfg.Log.Format), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}
