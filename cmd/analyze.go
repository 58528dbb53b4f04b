package cmd

import (
	"fmt"

	"github.com/KaramelBytes/tubestats-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaInput      inputFlags
	anaFormat     string
	anaOutputPath string
	anaChartsDir  string
	anaNoCharts   bool
	anaChartSpecs string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a YouTube video export (CSV/TSV/XLSX) and print a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := anaInput.loadOptions(cmd)
		if err != nil {
			return err
		}
		buckets, err := configuredBuckets()
		if err != nil {
			return err
		}
		format := resolveFormat(anaFormat, cmd)
		rep, err := analyzeFile(path, opt, buckets)
		if err != nil {
			return err
		}
		body, err := renderReport(rep, format)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		// Status lines must not mix into a machine-readable report on stdout.
		status := out
		if anaOutputPath == "" && format != "text" {
			status = cmd.ErrOrStderr()
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, body); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote report to %s\n", anaOutputPath)
		} else {
			fmt.Fprint(out, string(body))
			if format == "json" {
				fmt.Fprintln(out)
			}
		}
		if anaChartSpecs != "" {
			specs, err := utils.PrettyJSON(rep.Charts())
			if err != nil {
				return err
			}
			if err := utils.SafeWriteFile(anaChartSpecs, specs); err != nil {
				return fmt.Errorf("write chart specs: %w", err)
			}
			fmt.Fprintf(status, "✓ Wrote chart specs to %s\n", anaChartSpecs)
		}
		return writeCharts(status, rep, chartsDir(anaChartsDir, anaNoCharts, cmd), false)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaInput.register(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "text", "report format: text|markdown|json")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report instead of stdout")
	analyzeCmd.Flags().StringVar(&anaChartsDir, "charts-dir", "charts", "directory for chart HTML pages")
	analyzeCmd.Flags().BoolVar(&anaNoCharts, "no-charts", false, "skip chart rendering")
	analyzeCmd.Flags().StringVar(&anaChartSpecs, "chart-specs", "", "optional path to write chart series as JSON")
}
