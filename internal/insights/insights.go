// Package insights ranks aggregated groups to pick out the extremes worth
// reporting.
package insights

import (
	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
	"github.com/samber/lo"
)

// Kind identifies which ranking produced an insight.
type Kind string

const (
	TopCategoryViews      Kind = "top_category_views"
	TopCategoryEngagement Kind = "top_category_engagement"
	OptimalLength         Kind = "optimal_length"
	TopLengthEngagement   Kind = "top_length_engagement"
)

// Grouping names the dimension an insight ranks over.
type Grouping string

const (
	ByCategory Grouping = "category"
	ByLength   Grouping = "length"
)

// Metric names the value an insight carries.
type Metric string

const (
	MetricAvgViews       Metric = "avg_views"
	MetricEngagementRate Metric = "engagement_rate"
)

// Insight is a ranking extreme: which group scored highest on a metric.
type Insight struct {
	Kind     Kind     `json:"kind"`
	Label    string   `json:"label"`
	Grouping Grouping `json:"grouping"`
	Key      string   `json:"key"`
	Metric   Metric   `json:"metric"`
	Value    float64  `json:"value"`
}

type rule struct {
	kind     Kind
	label    string
	grouping Grouping
	metric   Metric
}

var rules = []rule{
	{TopCategoryViews, "Top Performing Category", ByCategory, MetricAvgViews},
	{TopCategoryEngagement, "Highest Engagement Rate", ByCategory, MetricEngagementRate},
	{OptimalLength, "Optimal Video Length", ByLength, MetricAvgViews},
	{TopLengthEngagement, "Best Engagement by Length", ByLength, MetricEngagementRate},
}

// Generate returns up to four insights. Ties go to the group encountered
// first in the input. The unknown-duration bucket is not ranked. An empty
// summary yields no insights.
func Generate(s metrics.Summary) []Insight {
	if s.Empty() {
		return nil
	}
	lengths := lo.Filter(s.Lengths, func(g metrics.Stats, _ int) bool {
		return g.Key != metrics.UnknownBucket
	})
	var out []Insight
	for _, r := range rules {
		groups := s.Categories
		if r.grouping == ByLength {
			groups = lengths
		}
		if len(groups) == 0 {
			continue
		}
		value := metricOf(r.metric)
		best := lo.MaxBy(groups, func(a, b metrics.Stats) bool { return value(a) > value(b) })
		out = append(out, Insight{
			Kind:     r.kind,
			Label:    r.label,
			Grouping: r.grouping,
			Key:      best.Key,
			Metric:   r.metric,
			Value:    value(best),
		})
	}
	return out
}

// Find returns the insight of the given kind.
func Find(all []Insight, kind Kind) (Insight, bool) {
	return lo.Find(all, func(i Insight) bool { return i.Kind == kind })
}

func metricOf(m Metric) func(metrics.Stats) float64 {
	if m == MetricEngagementRate {
		return func(s metrics.Stats) float64 { return s.EngagementRate }
	}
	return func(s metrics.Stats) float64 { return s.AvgViews }
}
