package report

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
	"github.com/samber/lo"
)

// ChartKind is the visual form of a chart.
type ChartKind string

const (
	KindBar           ChartKind = "bar"
	KindHorizontalBar ChartKind = "horizontal_bar"
	KindPie           ChartKind = "pie"
	KindGroupedBar    ChartKind = "grouped_bar"
)

// Series is one named run of values aligned with Chart.Labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

// Chart is a renderer-agnostic chart description.
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Labels []string  `json:"labels"`
	Series []Series  `json:"series"`
}

// Validate checks every series has one value per label.
func (c Chart) Validate() error {
	if len(c.Series) == 0 {
		return fmt.Errorf("chart %q: no series", c.Title)
	}
	if c.Kind == KindPie && len(c.Series) != 1 {
		return fmt.Errorf("chart %q: pie charts take exactly one series", c.Title)
	}
	for _, s := range c.Series {
		if len(s.Values) != len(c.Labels) {
			return fmt.Errorf("chart %q: series %q has %d values for %d labels", c.Title, s.Name, len(s.Values), len(c.Labels))
		}
	}
	return nil
}

// Panel groups the charts for one dimension.
type Panel struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Charts []Chart `json:"charts"`
}

// Charts returns the category and video-length panels, or nil for an empty report.
func (r *Report) Charts() []Panel {
	s := r.Summary
	if s.Empty() {
		return nil
	}
	return []Panel{
		categoryPanel(s.CategoriesByAvgViews()),
		lengthPanel(s.LengthsInBucketOrder()),
	}
}

func categoryPanel(groups []metrics.Stats) Panel {
	labels := keys(groups)
	return Panel{
		Name:  "category",
		Title: "Performance by Category",
		Charts: []Chart{
			{
				Kind: KindBar, Title: "Average Views by Category",
				XLabel: "Category", YLabel: "Average Views",
				Labels: labels,
				Series: []Series{{Name: "Avg Views", Values: values(groups, avgViews), Color: "#4682b4"}},
			},
			{
				Kind: KindHorizontalBar, Title: "Engagement Rate by Category",
				XLabel: "Engagement Rate (%)", YLabel: "Category",
				Labels: labels,
				Series: []Series{{Name: "Engagement Rate (%)", Values: values(groups, engagementPct), Color: "#ff7f50"}},
			},
			{
				Kind: KindPie, Title: "Video Distribution by Category",
				Labels: labels,
				Series: []Series{{Name: "Videos", Values: values(groups, videoCount)}},
			},
			{
				Kind: KindGroupedBar, Title: "Average Engagement by Category",
				XLabel: "Category", YLabel: "Count",
				Labels: labels,
				Series: []Series{
					{Name: "Avg Likes", Values: values(groups, avgLikes), Color: "#ef4444"},
					{Name: "Avg Comments", Values: values(groups, avgComments), Color: "#10b981"},
				},
			},
		},
	}
}

func lengthPanel(groups []metrics.Stats) Panel {
	labels := keys(groups)
	return Panel{
		Name:  "length",
		Title: "Performance by Video Length",
		Charts: []Chart{
			{
				Kind: KindBar, Title: "Average Views by Video Length",
				XLabel: "Video Length", YLabel: "Average Views",
				Labels: labels,
				Series: []Series{{Name: "Avg Views", Values: values(groups, avgViews), Color: "#3b82f6"}},
			},
			{
				Kind: KindBar, Title: "Engagement Rate by Video Length",
				XLabel: "Video Length", YLabel: "Engagement Rate (%)",
				Labels: labels,
				Series: []Series{{Name: "Engagement Rate (%)", Values: values(groups, engagementPct), Color: "#8b5cf6"}},
			},
			{
				Kind: KindBar, Title: "Video Count by Length Category",
				XLabel: "Video Length", YLabel: "Number of Videos",
				Labels: labels,
				Series: []Series{{Name: "Videos", Values: values(groups, videoCount), Color: "#10b981"}},
			},
			{
				Kind: KindGroupedBar, Title: "Average Engagement by Video Length",
				XLabel: "Video Length", YLabel: "Count",
				Labels: labels,
				Series: []Series{
					{Name: "Avg Likes", Values: values(groups, avgLikes), Color: "#ef4444"},
					{Name: "Avg Comments", Values: values(groups, avgComments), Color: "#f59e0b"},
				},
			},
		},
	}
}

func keys(groups []metrics.Stats) []string {
	return lo.Map(groups, func(g metrics.Stats, _ int) string { return g.Key })
}

func values(groups []metrics.Stats, pick func(metrics.Stats) float64) []float64 {
	return lo.Map(groups, func(g metrics.Stats, _ int) float64 { return roundTo2(pick(g)) })
}

func avgViews(g metrics.Stats) float64      { return g.AvgViews }
func avgLikes(g metrics.Stats) float64      { return g.AvgLikes }
func avgComments(g metrics.Stats) float64   { return g.AvgComments }
func videoCount(g metrics.Stats) float64    { return float64(g.Videos) }
func engagementPct(g metrics.Stats) float64 { return g.EngagementRate * 100 }

func roundTo2(v float64) float64 { return math.Round(v*100) / 100 }
