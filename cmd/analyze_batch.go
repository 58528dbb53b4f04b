package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/tubestats-cli/internal/logger"
	"github.com/KaramelBytes/tubestats-cli/internal/report"
	"github.com/KaramelBytes/tubestats-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abInput     inputFlags
	abFormat    string
	abOutputDir string
	abChartsDir string
	abNoCharts  bool
	abQuiet     bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple exports, one independent report per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		opt, err := abInput.loadOptions(cmd)
		if err != nil {
			return err
		}
		buckets, err := configuredBuckets()
		if err != nil {
			return err
		}
		format := resolveFormat(abFormat, cmd)
		ext := map[string]string{"json": ".json", "markdown": ".md", "md": ".md"}[format]
		if ext == "" {
			ext = ".txt"
		}
		chartRoot := chartsDir(abChartsDir, abNoCharts, cmd)
		out := cmd.OutOrStdout()

		failed := 0
		chartNames := map[string]int{}
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			rep, err := analyzeFile(path, opt, buckets)
			if err == nil {
				err = emitBatchReport(cmd, rep, path, format, ext, chartSubdir(chartRoot, path, chartNames))
			}
			if err != nil {
				failed++
				log.Error("batch item failed", logger.String("file", path), logger.Error(err))
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", filepath.Base(path), err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, and dedupes.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// emitBatchReport writes one file's report and charts.
func emitBatchReport(cmd *cobra.Command, rep *report.Report, path, format, ext, chartDir string) error {
	body, err := renderReport(rep, format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if abOutputDir != "" {
		target := filepath.Join(abOutputDir, baseName(path)+".report"+ext)
		unique := utils.UniqueName(abOutputDir, baseName(path), ".report"+ext)
		if unique != target && !abQuiet {
			fmt.Fprintf(out, "⚠ Detected existing report, writing to %s to avoid overwrite.\n", filepath.Base(unique))
		}
		if err := utils.SafeWriteFile(unique, body); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if !abQuiet {
			fmt.Fprintf(out, "✓ Wrote report to %s\n", unique)
		}
	} else if !abQuiet {
		fmt.Fprint(out, string(body))
		if format == "json" {
			fmt.Fprintln(out)
		}
	}
	return writeCharts(out, rep, chartDir, abQuiet)
}

// chartSubdir names a per-input chart directory, suffixing repeated base names.
func chartSubdir(root, path string, used map[string]int) string {
	if root == "" {
		return ""
	}
	name := baseName(path)
	used[name]++
	if n := used[name]; n > 1 {
		name = fmt.Sprintf("%s__%d", name, n)
	}
	return filepath.Join(root, name)
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abInput.register(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abFormat, "format", "text", "report format: text|markdown|json")
	analyzeBatchCmd.Flags().StringVar(&abOutputDir, "output-dir", "", "write one report file per input into this directory instead of stdout")
	analyzeBatchCmd.Flags().StringVar(&abChartsDir, "charts-dir", "charts", "root directory for chart pages (one subdirectory per input)")
	analyzeBatchCmd.Flags().BoolVar(&abNoCharts, "no-charts", false, "skip chart rendering")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
