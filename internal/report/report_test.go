package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
	"github.com/KaramelBytes/tubestats-cli/internal/insights"
	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(t *testing.T) *Report {
	t.Helper()
	ds := dataset.Build("videos.csv",
		[]string{"Title", "Category", "Views", "Likes", "Comments", "Duration"},
		[][]string{
			{"A", "Entertainment", "1000", "50", "10", "3"},
			{"B", "Music", "2000", "180", "20", "8"},
			{"C", "Entertainment", "3000", "90", "30", "20"},
		}, dataset.DefaultLoadOptions())
	s := metrics.Compute(ds.Records, metrics.DefaultBuckets())
	return New(ds, s, insights.Generate(s))
}

func emptyReport() *Report {
	s := metrics.Compute(nil, nil)
	return New(nil, s, insights.Generate(s))
}

func TestNew_CopiesDatasetInfo(t *testing.T) {
	r := scenario(t)
	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, "videos.csv", r.Source)
	assert.Equal(t, 3, r.Rows)
	assert.Equal(t, "Category", r.Columns["category"])
	assert.Equal(t, "Duration", r.Columns["duration"])
}

func TestWriteText_Sections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, scenario(t).WriteText(&buf))
	out := buf.String()
	for _, h := range []string{HeaderSummary, HeaderCategories, HeaderLengths, HeaderInsights} {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "Total Views: 6,000")
	assert.Contains(t, out, "Top Performing Category:")
	assert.Contains(t, out, "Entertainment: 2,000 avg views")
	assert.Contains(t, out, "Music: 10.00% engagement")
	assert.Contains(t, out, "Long (15-30 min)")
	assert.NotContains(t, out, NoDataMessage)
	// Categories sorted by avg views: the tie keeps first-encountered order.
	assert.Less(t, strings.Index(out, "│ Entertainment"), strings.Index(out, "│ Music"))
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, emptyReport().WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, HeaderSummary)
	assert.Contains(t, out, NoDataMessage)
	assert.NotContains(t, out, HeaderInsights)
}

func TestWriteText_Notes(t *testing.T) {
	r := scenario(t)
	r.Warnings = []string{"something odd"}
	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.Contains(t, buf.String(), HeaderNotes)
	assert.Contains(t, buf.String(), "⚠ something odd")
}

func TestMarkdown(t *testing.T) {
	md := scenario(t).Markdown()
	for _, h := range []string{"[VIDEO ANALYTICS SUMMARY]", "[CATEGORIES]", "[VIDEO LENGTH]", "[INSIGHTS]", "[COLUMNS]"} {
		assert.Contains(t, md, h)
	}
	assert.Contains(t, md, "- Music (n=1)")
	assert.Contains(t, md, "- category ← Category")
	assert.Less(t, strings.Index(md, "- title ←"), strings.Index(md, "- views ←"))

	empty := emptyReport().Markdown()
	assert.Contains(t, empty, NoDataMessage)
	assert.NotContains(t, empty, "[INSIGHTS]")
}

func TestJSON(t *testing.T) {
	b, err := scenario(t).JSON()
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Contains(t, doc, "summary")
	assert.Contains(t, doc, "insights")
	charts, ok := doc["charts"].([]any)
	require.True(t, ok)
	assert.Len(t, charts, 2)

	b, err = emptyReport().JSON()
	require.NoError(t, err)
	doc = map[string]any{}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.NotContains(t, doc, "charts")
}

func TestCharts(t *testing.T) {
	panels := scenario(t).Charts()
	require.Len(t, panels, 2)
	assert.Equal(t, "category", panels[0].Name)
	assert.Equal(t, "length", panels[1].Name)
	for _, p := range panels {
		require.Len(t, p.Charts, 4)
		for _, c := range p.Charts {
			assert.NoError(t, c.Validate(), c.Title)
		}
	}

	cat := panels[0]
	assert.Equal(t, []string{"Entertainment", "Music"}, cat.Charts[0].Labels)
	assert.Equal(t, []float64{2000, 2000}, cat.Charts[0].Series[0].Values)
	assert.Equal(t, KindHorizontalBar, cat.Charts[1].Kind)
	assert.Equal(t, []float64{4.5, 10}, cat.Charts[1].Series[0].Values)
	assert.Equal(t, KindPie, cat.Charts[2].Kind)
	assert.Equal(t, []float64{2, 1}, cat.Charts[2].Series[0].Values)
	assert.Len(t, cat.Charts[3].Series, 2)

	length := panels[1]
	assert.Equal(t, []string{"Short (0-5 min)", "Medium (5-15 min)", "Long (15-30 min)"}, length.Charts[0].Labels)

	assert.Nil(t, emptyReport().Charts())
}

func TestChartValidate(t *testing.T) {
	c := Chart{Kind: KindBar, Title: "x", Labels: []string{"a", "b"}, Series: []Series{{Name: "s", Values: []float64{1}}}}
	assert.Error(t, c.Validate())
	c.Series[0].Values = []float64{1, 2}
	assert.NoError(t, c.Validate())
	assert.Error(t, Chart{Kind: KindBar, Title: "none"}.Validate())
	pie := Chart{Kind: KindPie, Labels: []string{"a"}, Series: []Series{{Values: []float64{1}}, {Values: []float64{2}}}}
	assert.Error(t, pie.Validate())
}
