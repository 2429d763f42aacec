package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"crypto-cluster-insights/internal/observability"
	"crypto-cluster-insights/internal/profile"
	"crypto-cluster-insights/internal/reporting"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseClusterID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid cluster id %q: must be an integer", arg)
	}
	return id, nil
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <cluster-id>",
		Short: "Print one cluster profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClusterID(args[0])
			if err != nil {
				return err
			}
			analyzer, _, err := a.loadAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			p, err := analyzer.GenerateClusterProfile(id)
			if err != nil {
				return err
			}
			observability.RecordProfileGenerated(string(p.Risk.Level))
			return writeJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the market summary as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, _, err := a.loadAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analyzer.GenerateMarketSummary())
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	var asCSV, asJSON bool

	cmd := &cobra.Command{
		Use:   "compare <cluster-id>...",
		Short: "Compare clusters side by side (Markdown table by default)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, len(args))
			for i, arg := range args {
				id, err := parseClusterID(arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}

			analyzer, _, err := a.loadAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := profile.CompareClusters(analyzer, ids)
			if err != nil {
				return err
			}
			observability.RecordComparisonGenerated()

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeJSON(out, rows)
			case asCSV:
				body, err := reporting.RenderComparisonCSV(rows)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, body)
				return err
			default:
				_, err = io.WriteString(out, reporting.RenderComparisonMarkdown(rows))
				return err
			}
		},
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print CSV")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.MarkFlagsMutuallyExclusive("csv", "json")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var out string
	var html bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the Markdown analysis report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, _, err := a.loadAnalyzer(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" {
				if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
				out = filepath.Join(a.cfg.Output.Dir, profile.DefaultReportFilename(time.Now()))
			}
			if !cmd.Flags().Changed("html") {
				html = a.cfg.Output.HTML
			}

			md, err := analyzer.ExportAnalysisReport(out)
			if err != nil {
				observability.RecordReportExportError()
				return err
			}
			observability.RecordReportGenerated("markdown")
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if html {
				page, err := reporting.RenderHTML(md)
				if err != nil {
					return err
				}
				htmlPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".html"
				if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
					observability.RecordReportExportError()
					return &profile.ExportError{Path: htmlPath, Err: err}
				}
				observability.RecordReportGenerated("html")
				fmt.Fprintln(cmd.OutOrStdout(), htmlPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "report path (default <output dir>/crypto_analysis_report_<timestamp>.md)")
	cmd.Flags().BoolVar(&html, "html", false, "also write an HTML copy next to the Markdown file")
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <cluster-id>",
		Short: "Print the analyst prompt for a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClusterID(args[0])
			if err != nil {
				return err
			}
			analyzer, _, err := a.loadAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			prompt, err := analyzer.GeneratePromptForInsights(id)
			if err != nil {
				return err
			}
			observability.RecordPromptGenerated()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return err
		},
	}
}

func newROICmd(a *app) *cobra.Command {
	var amount float64
	var months int

	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Project returns for the configured risk scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projections, err := profile.ProjectROI(amount, months, a.cfg.ROIScenarios)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tRISK\tEXPECTED VALUE\tPROFIT\tROI\tVOLATILITY\tALLOCATION")
			for _, p := range projections {
				fmt.Fprintf(tw, "%s\t%s\t$%s\t$%s\t%.1f%%\t±%.0f%%\t%s\n",
					p.Scenario,
					p.RiskLevel,
					humanize.FormatFloat("#,###.##", p.ExpectedValue),
					humanize.FormatFloat("#,###.##", p.Profit),
					p.ROIPercent,
					p.Volatility,
					p.Allocation,
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", profile.DefaultROIAmount, "initial investment")
	cmd.Flags().IntVar(&months, "months", profile.DefaultROIHorizonMonths, "time horizon in months")
	return cmd
}
