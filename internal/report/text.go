package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const ruleWidth = 60

// Section headers of the console report.
const (
	HeaderSummary    = "YOUTUBE CHANNEL ANALYTICS SUMMARY"
	HeaderCategories = "PERFORMANCE BY CATEGORY"
	HeaderLengths    = "PERFORMANCE BY VIDEO LENGTH"
	HeaderInsights   = "KEY INSIGHTS"
	HeaderNotes      = "NOTES"
)

// NoDataMessage replaces the report body when nothing was aggregated.
const NoDataMessage = "No data: the input contained no usable video records."

// WriteText writes the console report.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	banner(&b, HeaderSummary)
	if r.Source != "" {
		fmt.Fprintf(&b, "File: %s\n", r.Source)
	}
	s := r.Summary
	if s.Empty() {
		b.WriteString("\n" + NoDataMessage + "\n")
	} else {
		fmt.Fprintf(&b, "\nTotal Videos: %s\n", formatInt(int64(s.Totals.Videos)))
		fmt.Fprintf(&b, "Total Views: %s\n", formatInt(s.Totals.Views))
		fmt.Fprintf(&b, "Total Likes: %s\n", formatInt(s.Totals.Likes))
		fmt.Fprintf(&b, "Total Comments: %s\n", formatInt(s.Totals.Comments))
		if s.Totals.HasSubscribers {
			fmt.Fprintf(&b, "Total Subscribers: %s\n", formatInt(s.Totals.Subscribers))
		}
		fmt.Fprintf(&b, "Avg Engagement Rate: %s\n", formatPct(s.AvgEngagementRate))
		fmt.Fprintf(&b, "\nCategories: %d\n", len(s.Categories))
		fmt.Fprintf(&b, "Avg Video Duration: %.1f minutes\n", s.AvgDurationMin)

		banner(&b, HeaderCategories)
		b.WriteString(statsTable("Category", s.CategoriesByAvgViews()))
		b.WriteString("\n")

		banner(&b, HeaderLengths)
		b.WriteString(statsTable("Video Length", s.LengthsInBucketOrder()))
		b.WriteString("\n")

		banner(&b, HeaderInsights)
		if len(r.Insights) == 0 {
			b.WriteString("No insights available\n")
		}
		for _, in := range r.Insights {
			fmt.Fprintf(&b, "%s:\n   %s\n", in.Label, describe(in))
		}
	}
	if len(r.Warnings) > 0 {
		banner(&b, HeaderNotes)
		for _, wn := range r.Warnings {
			fmt.Fprintf(&b, "⚠ %s\n", wn)
		}
	}
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func banner(b *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(b, "\n%s\n%s\n%s\n", rule, title, rule)
}

func statsTable(keyHeader string, groups []metrics.Stats) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{keyHeader, "Videos", "Total Views", "Avg Views", "Avg Likes", "Avg Comments", "Engagement"})
	for _, g := range groups {
		t.AppendRow(table.Row{
			g.Key,
			g.Videos,
			formatInt(g.TotalViews),
			formatCount(g.AvgViews),
			formatCount(g.AvgLikes),
			formatCount(g.AvgComments),
			formatPct(g.EngagementRate),
		})
	}
	cfgs := make([]table.ColumnConfig, 0, 6)
	for n := 2; n <= 7; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(cfgs)
	return t.Render() + "\n"
}
