// Package report formats aggregates and insights for people (console text,
// Markdown) and for tools (JSON, chart series).
package report

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
	"github.com/KaramelBytes/tubestats-cli/internal/insights"
	"github.com/KaramelBytes/tubestats-cli/internal/metrics"
	"github.com/KaramelBytes/tubestats-cli/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report bundles everything computed for one input file.
type Report struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Source      string             `json:"source"`
	Rows        int                `json:"rows"`
	Processed   int                `json:"processed"`
	Columns     map[string]string  `json:"columns"`
	Summary     metrics.Summary    `json:"summary"`
	Insights    []insights.Insight `json:"insights"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// New assembles a report. ds may be nil when the summary was computed from
// records that did not come from a file.
func New(ds *dataset.Dataset, s metrics.Summary, ins []insights.Insight) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Columns:     map[string]string{},
		Summary:     s,
		Insights:    ins,
	}
	if ds != nil {
		r.Source = ds.Name
		r.Rows = ds.Rows
		r.Processed = ds.Processed
		for f, h := range ds.Mapping {
			r.Columns[string(f)] = h
		}
		r.Warnings = append(r.Warnings, ds.Warnings...)
	}
	return r
}

// JSON renders the report together with its chart specifications.
func (r *Report) JSON() ([]byte, error) {
	doc := struct {
		*Report
		Charts []Panel `json:"charts,omitempty"`
	}{Report: r, Charts: r.Charts()}
	return utils.PrettyJSON(doc)
}

var printer = message.NewPrinter(language.English)

func formatInt(n int64) string { return printer.Sprintf("%d", n) }

func formatCount(f float64) string { return printer.Sprintf("%d", int64(f+0.5)) }

func formatPct(rate float64) string { return fmt.Sprintf("%.2f%%", rate*100) }

// describe renders an insight value with its unit.
func describe(i insights.Insight) string {
	if i.Metric == insights.MetricEngagementRate {
		return fmt.Sprintf("%s: %s engagement", i.Key, formatPct(i.Value))
	}
	return fmt.Sprintf("%s: %s avg views", i.Key, formatCount(i.Value))
}
