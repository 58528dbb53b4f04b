package charts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tubestats-cli/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePanels() []report.Panel {
	labels := []string{"Entertainment", "Music"}
	return []report.Panel{{
		Name:  "category",
		Title: "Performance by Category",
		Charts: []report.Chart{
			{Kind: report.KindBar, Title: "Average Views by Category", Labels: labels,
				Series: []report.Series{{Name: "Avg Views", Values: []float64{2000, 2000}, Color: "#4682b4"}}},
			{Kind: report.KindHorizontalBar, Title: "Engagement Rate by Category", Labels: labels,
				Series: []report.Series{{Name: "Engagement Rate (%)", Values: []float64{4.5, 10}}}},
			{Kind: report.KindPie, Title: "Video Distribution by Category", Labels: labels,
				Series: []report.Series{{Name: "Videos", Values: []float64{2, 1}}}},
		},
	}}
}

func TestRender_WritesPanelPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := Render(dir, samplePanels())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "category.html")}, paths)

	b, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	html := string(b)
	assert.Contains(t, html, "Performance by Category")
	assert.Contains(t, html, "Average Views by Category")
	assert.Contains(t, html, "Entertainment")
}

func TestRender_NoPanels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	paths, err := Render(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender_InvalidChart(t *testing.T) {
	panels := []report.Panel{{Name: "bad", Charts: []report.Chart{{
		Kind: report.KindBar, Title: "broken", Labels: []string{"a", "b"},
		Series: []report.Series{{Name: "s", Values: []float64{1}}},
	}}}}
	_, err := Render(t.TempDir(), panels)
	assert.Error(t, err)
}
