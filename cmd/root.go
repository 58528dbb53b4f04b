package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/tubestats-cli/internal/config"
	"github.com/KaramelBytes/tubestats-cli/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
	log = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tubestats",
	Short: "TubeStats CLI: engagement analytics for YouTube video exports",
	Long: `TubeStats reads CSV/TSV/XLSX exports of YouTube video statistics, tolerates
inconsistent headers and messy values, and reports totals, per-category and
per-length performance, key insights, and chart pages.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tubestats/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: analysis still runs on built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
	}
	cfg = c

	level := "warn"
	if cfg != nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if logLevel != "" {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	log = logger.New(logger.Config{Level: level, Output: rootCmd.ErrOrStderr()})
	if cfg != nil {
		log.Debug("config loaded", logger.String("file", cfgFile))
	}
}
