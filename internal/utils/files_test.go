package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/tubestats-cli/internal/utils"
)

func TestSafeWriteFileCreatesParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "out.txt")
	if err := utils.SafeWriteFile(p, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "hello" {
		t.Fatalf("read back: %q, %v", b, err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestUniqueName_KeepsCompoundSuffix(t *testing.T) {
	dir := t.TempDir()
	first := utils.UniqueName(dir, "metrics", ".report.md")
	if first != filepath.Join(dir, "metrics.report.md") {
		t.Fatalf("unexpected first name %s", first)
	}
	if err := os.WriteFile(first, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := utils.UniqueName(dir, "metrics", ".report.md"); got != filepath.Join(dir, "metrics__2.report.md") {
		t.Fatalf("expected metrics__2.report.md, got %s", got)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"views": 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"views\": 1") {
		t.Fatalf("expected indented json, got %s", b)
	}
}
