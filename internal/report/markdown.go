package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
)

// Markdown renders a compact report suitable for notes or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[VIDEO ANALYTICS SUMMARY]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	if r.Processed > 0 && r.Processed < r.Rows {
		b.WriteString(fmt.Sprintf("Rows: ~%d (processed %d)\n", r.Rows, r.Processed))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	s := r.Summary
	if s.Empty() {
		b.WriteString("\n" + NoDataMessage + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Videos: %d\n", s.Totals.Videos))
		b.WriteString(fmt.Sprintf("Views: %s; likes %s; comments %s\n",
			formatInt(s.Totals.Views), formatInt(s.Totals.Likes), formatInt(s.Totals.Comments)))
		if s.Totals.HasSubscribers {
			b.WriteString(fmt.Sprintf("Subscribers: %s\n", formatInt(s.Totals.Subscribers)))
		}
		b.WriteString(fmt.Sprintf("Avg engagement rate: %s\n", formatPct(s.AvgEngagementRate)))
		b.WriteString(fmt.Sprintf("Avg duration: %.1f min\n", s.AvgDurationMin))

		b.WriteString("\n[CATEGORIES]\n")
		writeGroups(&b, s.CategoriesByAvgViews())
		b.WriteString("\n[VIDEO LENGTH]\n")
		writeGroups(&b, s.LengthsInBucketOrder())

		if len(r.Insights) > 0 {
			b.WriteString("\n[INSIGHTS]\n")
			for _, in := range r.Insights {
				b.WriteString(fmt.Sprintf("- %s: %s\n", in.Label, describe(in)))
			}
		}
	}
	if len(r.Columns) > 0 {
		b.WriteString("\n[COLUMNS]\n")
		keys := make([]string, 0, len(r.Columns))
		for k := range r.Columns {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return fieldRank(keys[i]) < fieldRank(keys[j]) })
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("- %s ← %s\n", k, safeVal(r.Columns[k])))
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeGroups(b *strings.Builder, groups []metrics.Stats) {
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("- %s (n=%d)\n", safeVal(g.Key), g.Videos))
		b.WriteString(fmt.Sprintf("  • views: total %s, mean %s\n", formatInt(g.TotalViews), formatCount(g.AvgViews)))
		b.WriteString(fmt.Sprintf("  • likes: mean %s; comments: mean %s\n", formatCount(g.AvgLikes), formatCount(g.AvgComments)))
		b.WriteString(fmt.Sprintf("  • engagement: %s (per-video mean %s)\n", formatPct(g.EngagementRate), formatPct(g.AvgEngagementRate)))
	}
}

func fieldRank(name string) int {
	for i, f := range dataset.Fields {
		if string(f) == name {
			return i
		}
	}
	return len(dataset.Fields)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
