package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
)

// Global configuration structure.
type Global struct {
	// Delimiter forces the CSV separator; empty means sniff it.
	Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
	MaxRows       int    `mapstructure:"max_rows" yaml:"max_rows"`
	DurationUnit  string `mapstructure:"duration_unit" yaml:"duration_unit"`
	DropZeroViews bool   `mapstructure:"drop_zero_views" yaml:"drop_zero_views"`

	// Output
	ChartsDir     string `mapstructure:"charts_dir" yaml:"charts_dir"`
	ChartsEnabled bool   `mapstructure:"charts_enabled" yaml:"charts_enabled"`
	OutputFormat  string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`

	LengthBuckets []metrics.Bucket `mapstructure:"length_buckets" yaml:"length_buckets"`
	// Aliases adds extra header names per canonical field.
	Aliases map[string][]string `mapstructure:"aliases" yaml:"aliases,omitempty"`
}

// Buckets returns the configured length buckets, or the defaults when none are set.
func (c *Global) Buckets() (metrics.Buckets, error) {
	if len(c.LengthBuckets) == 0 {
		return metrics.DefaultBuckets(), nil
	}
	b := metrics.Buckets(c.LengthBuckets)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Dir returns ~/.tubestats.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tubestats"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tubestats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags > env (.env included) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// .env is optional
	_ = godotenv.Load()
	return load(cfgFile, true)
}

// LoadFile loads only defaults and the config file. Use it before Save so
// env overrides are not written back to disk.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("TUBESTATS")
		v.AutomaticEnv()
	}

	v.SetDefault("delimiter", "")
	v.SetDefault("max_rows", 0)
	v.SetDefault("duration_unit", "minutes")
	v.SetDefault("drop_zero_views", false)
	v.SetDefault("charts_dir", "charts")
	v.SetDefault("charts_enabled", true)
	v.SetDefault("output_format", "text")
	v.SetDefault("log_level", "warn")

	if cfgFile != "" {
		// An explicit file that does not exist yet is created by Save.
		if _, err := os.Stat(cfgFile); err == nil {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
