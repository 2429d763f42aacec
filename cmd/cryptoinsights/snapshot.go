package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crypto-cluster-insights/internal/pipeline"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Run the export pipeline: report files plus profile snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := a.openStores(ctx, true)
			if err != nil {
				return err
			}
			defer s.cleanup()

			p := pipeline.NewExportPipeline(s.coins, s.datasetID, a.cfg.Output.Dir).
				WithSnapshotStore(s.snapshots).
				WithSufficiencyChecker(pipeline.NewSufficiencyChecker(), strict).
				WithHTML(a.cfg.Output.HTML).
				WithLogger(a.log)

			res, err := p.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %d clusters, %d snapshots\n", res.RunID, res.Clusters, res.Snapshots)
			for _, f := range res.Files {
				fmt.Fprintf(out, "  - %s\n", f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the dataset does not pass sufficiency checks")
	return cmd
}
