package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DurationUnit != "minutes" || c.OutputFormat != "text" || !c.ChartsEnabled || c.ChartsDir != "charts" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	b, err := c.Buckets()
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	if len(b) != 4 || b[0].Label != "Short (0-5 min)" {
		t.Fatalf("expected default buckets, got %+v", b)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TUBESTATS_DURATION_UNIT", "seconds")
	t.Setenv("TUBESTATS_MAX_ROWS", "25")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DurationUnit != "seconds" || c.MaxRows != 25 {
		t.Fatalf("env not applied: %+v", c)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("TUBESTATS_OUTPUT_FORMAT=json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TUBESTATS_OUTPUT_FORMAT") })
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.OutputFormat != "json" {
		t.Fatalf("expected .env value, got %q", c.OutputFormat)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Global{
		DurationUnit:  "seconds",
		ChartsDir:     "out/charts",
		OutputFormat:  "markdown",
		LogLevel:      "info",
		LengthBuckets: []metrics.Bucket{{Label: "Quick", MaxMinutes: 2}, {Label: "Rest"}},
		Aliases:       map[string][]string{"views": {"plays"}},
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.DurationUnit != "seconds" || out.ChartsDir != "out/charts" || out.OutputFormat != "markdown" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	b, err := out.Buckets()
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	if len(b) != 2 || b[0].Label != "Quick" || b[0].MaxMinutes != 2 {
		t.Fatalf("buckets not loaded: %+v", b)
	}
	if got := out.Aliases["views"]; len(got) != 1 || got[0] != "plays" {
		t.Fatalf("aliases not loaded: %+v", out.Aliases)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	c, err := Load(missing)
	if err != nil {
		t.Fatalf("missing explicit config should fall back to defaults: %v", err)
	}
	if c.OutputFormat != "text" {
		t.Fatalf("expected defaults, got %+v", c)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("max_rows: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestBuckets_Invalid(t *testing.T) {
	c := &Global{LengthBuckets: []metrics.Bucket{{Label: "A", MaxMinutes: 10}, {Label: "B", MaxMinutes: 5}}}
	if _, err := c.Buckets(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(&Global{DurationUnit: "seconds", MaxRows: 10, OutputFormat: "text"}, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	t.Setenv("TUBESTATS_MAX_ROWS", "99")
	t.Setenv("TUBESTATS_OUTPUT_FORMAT", "json")

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if c.MaxRows != 10 || c.OutputFormat != "text" || c.DurationUnit != "seconds" {
		t.Fatalf("env leaked into file layer: %+v", c)
	}
	full, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if full.MaxRows != 99 || full.OutputFormat != "json" {
		t.Fatalf("env not applied by Load: %+v", full)
	}
}
