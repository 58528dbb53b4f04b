package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/tubestats-cli/internal/config"
	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
	"github.com/KaramelBytes/tubestats-cli/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set TubeStats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		delim := cfg.Delimiter
		if delim == "" {
			delim = "auto"
		}
		fmt.Fprintf(out, "delimiter: %s\n", delim)
		fmt.Fprintf(out, "max_rows: %d\n", cfg.MaxRows)
		fmt.Fprintf(out, "duration_unit: %s\n", cfg.DurationUnit)
		fmt.Fprintf(out, "drop_zero_views: %t\n", cfg.DropZeroViews)
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "charts_enabled: %t\n", cfg.ChartsEnabled)
		fmt.Fprintf(out, "charts_dir: %s\n", cfg.ChartsDir)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		buckets, err := cfg.Buckets()
		if err != nil {
			fmt.Fprintf(out, "length_buckets: invalid (%v)\n", err)
		} else {
			fmt.Fprintln(out, "length_buckets:")
			for _, b := range buckets {
				if b.MaxMinutes > 0 {
					fmt.Fprintf(out, "  - %s: <= %g min\n", b.Label, b.MaxMinutes)
				} else {
					fmt.Fprintf(out, "  - %s: open-ended\n", b.Label)
				}
			}
		}
		if len(cfg.Aliases) > 0 {
			fmt.Fprintln(out, "aliases:")
			for _, f := range dataset.Fields {
				if extra := cfg.Aliases[string(f)]; len(extra) > 0 {
					fmt.Fprintf(out, "  %s: %s\n", f, strings.Join(extra, ", "))
				}
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk.

Keys: delimiter, max_rows, duration_unit, drop_zero_views, output_format,
charts_enabled, charts_dir, log_level, alias.<field> (comma-separated headers).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from the file alone so TUBESTATS_* overrides stay out of it.
		fileCfg, err := cfgpkg.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		if err := applySetting(fileCfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(fileCfg, cfgFile); err != nil {
			return err
		}
		log.Debug("config saved", logger.String("key", key))
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func applySetting(c *cfgpkg.Global, key, val string) error {
	if field, ok := strings.CutPrefix(key, "alias."); ok {
		f, known := dataset.ParseField(field)
		if !known {
			return fmt.Errorf("unknown field in %s", key)
		}
		var headers []string
		for _, h := range strings.Split(val, ",") {
			if h = strings.TrimSpace(h); h != "" {
				headers = append(headers, h)
			}
		}
		if c.Aliases == nil {
			c.Aliases = map[string][]string{}
		}
		if len(headers) == 0 {
			delete(c.Aliases, string(f))
		} else {
			c.Aliases[string(f)] = headers
		}
		return nil
	}
	switch key {
	case "delimiter":
		if _, err := parseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for max_rows: %v", val)
		}
		c.MaxRows = i
	case "duration_unit":
		u, err := dataset.ParseDurationUnit(val)
		if err != nil {
			return err
		}
		c.DurationUnit = string(u)
	case "drop_zero_views", "charts_enabled":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %w", key, err)
		}
		if key == "drop_zero_views" {
			c.DropZeroViews = b
		} else {
			c.ChartsEnabled = b
		}
	case "output_format":
		switch strings.ToLower(val) {
		case "text", "markdown", "json":
			c.OutputFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid output_format: %s (use text, markdown or json)", val)
		}
	case "charts_dir":
		c.ChartsDir = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
