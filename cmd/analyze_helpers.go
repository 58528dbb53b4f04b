package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/tubestats-cli/internal/charts"
	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
	"github.com/KaramelBytes/tubestats-cli/internal/insights"
	"github.com/KaramelBytes/tubestats-cli/internal/logger"
	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
	"github.com/KaramelBytes/tubestats-cli/internal/report"
	"github.com/spf13/cobra"
)

// inputFlags are the load flags shared by analyze and analyze-batch.
type inputFlags struct {
	delimiter     string
	decimal       string
	thousands     string
	sheetName     string
	sheetIndex    int
	maxRows       int
	durationUnit  string
	dropZeroViews bool
}

func (f *inputFlags) register(c *cobra.Command) {
	fl := c.Flags()
	fl.StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	fl.StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	fl.StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	fl.StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	fl.IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	fl.IntVar(&f.maxRows, "max-rows", 0, "maximum rows to process (0 = unlimited)")
	fl.StringVar(&f.durationUnit, "duration-unit", "", "unit of plain-number durations: minutes|seconds")
	fl.BoolVar(&f.dropZeroViews, "drop-zero-views", false, "discard videos with zero views before aggregating")
}

// loadOptions layers defaults, then config, then explicitly set flags.
func (f *inputFlags) loadOptions(c *cobra.Command) (dataset.LoadOptions, error) {
	opt := dataset.DefaultLoadOptions()
	delim, unit := "", ""
	if cfg != nil {
		delim = cfg.Delimiter
		unit = cfg.DurationUnit
		opt.MaxRows = cfg.MaxRows
		opt.DropZeroViews = cfg.DropZeroViews
		if len(cfg.Aliases) > 0 {
			merged, err := opt.Aliases.Merge(cfg.Aliases)
			if err != nil {
				return opt, fmt.Errorf("config aliases: %w", err)
			}
			opt.Aliases = merged
		}
	}
	fl := c.Flags()
	if fl.Changed("delimiter") {
		delim = f.delimiter
	}
	if fl.Changed("duration-unit") {
		unit = f.durationUnit
	}
	if fl.Changed("max-rows") {
		opt.MaxRows = f.maxRows
	}
	if fl.Changed("drop-zero-views") {
		opt.DropZeroViews = f.dropZeroViews
	}
	opt.SheetName = f.sheetName
	opt.SheetIndex = f.sheetIndex

	var err error
	if opt.Delimiter, err = parseDelimiter(delim); err != nil {
		return opt, err
	}
	if unit != "" {
		if opt.DurationUnit, err = dataset.ParseDurationUnit(unit); err != nil {
			return opt, err
		}
	}
	switch strings.ToLower(strings.TrimSpace(f.decimal)) {
	case ",", "comma":
		opt.Number.DecimalSeparator = ','
	case ".", "dot":
		opt.Number.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", f.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(f.thousands)) {
	case ",":
		opt.Number.ThousandsSeparator = ','
	case ".":
		opt.Number.ThousandsSeparator = '.'
	case "space", " ":
		opt.Number.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", f.thousands)
	}
	return opt, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func configuredBuckets() (metrics.Buckets, error) {
	if cfg == nil {
		return metrics.DefaultBuckets(), nil
	}
	return cfg.Buckets()
}

// analyzeFile runs load, aggregate and insight generation for one file.
func analyzeFile(path string, opt dataset.LoadOptions, buckets metrics.Buckets) (*report.Report, error) {
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	s := metrics.Compute(ds.Records, buckets)
	ins := insights.Generate(s)
	r := report.New(ds, s, ins)
	log.Debug("analyzed",
		logger.String("run_id", r.RunID),
		logger.String("file", ds.Name),
		logger.Int("rows", ds.Rows),
		logger.Int("records", len(ds.Records)),
		logger.Any("columns", r.Columns),
	)
	for _, w := range ds.Warnings {
		log.Info("dataset note", logger.String("file", ds.Name), logger.String("note", w))
	}
	return r, nil
}

func resolveFormat(flag string, c *cobra.Command) string {
	format := "text"
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	if c.Flags().Changed("format") {
		format = flag
	}
	return strings.ToLower(strings.TrimSpace(format))
}

// renderReport formats r as text, markdown or json.
func renderReport(r *report.Report, format string) ([]byte, error) {
	switch format {
	case "text", "":
		var b strings.Builder
		if err := r.WriteText(&b); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case "markdown", "md":
		return []byte(r.Markdown()), nil
	case "json":
		return r.JSON()
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use text|markdown|json)", format)
	}
}

// chartsDir returns where chart pages go, or "" when charts are off.
func chartsDir(flagDir string, noCharts bool, c *cobra.Command) string {
	if noCharts {
		return ""
	}
	dir, enabled := "charts", true
	if cfg != nil {
		enabled = cfg.ChartsEnabled
		if cfg.ChartsDir != "" {
			dir = cfg.ChartsDir
		}
	}
	if c.Flags().Changed("charts-dir") {
		dir, enabled = flagDir, true
	}
	if !enabled {
		return ""
	}
	return dir
}

func writeCharts(out io.Writer, r *report.Report, dir string, quiet bool) error {
	if dir == "" {
		return nil
	}
	paths, err := charts.Render(dir, r.Charts())
	if err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	if !quiet {
		for _, p := range paths {
			fmt.Fprintf(out, "✓ Wrote chart %s\n", p)
		}
	}
	return nil
}
