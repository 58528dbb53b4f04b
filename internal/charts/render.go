// Package charts renders report chart panels to standalone HTML pages.
package charts

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/tubestats-cli/internal/report"
	"github.com/KaramelBytes/tubestats-cli/internal/utils"
	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"
)

// Render writes one HTML page per panel into dir and returns the written paths.
func Render(dir string, panels []report.Panel) ([]string, error) {
	if len(panels) == 0 {
		return nil, nil
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("charts dir: %w", err)
	}
	var written []string
	for _, p := range panels {
		page := components.NewPage()
		page.PageTitle = p.Title
		for _, c := range p.Charts {
			if err := c.Validate(); err != nil {
				return written, err
			}
			page.AddCharts(build(c))
		}
		var buf bytes.Buffer
		if err := page.Render(&buf); err != nil {
			return written, fmt.Errorf("render %s: %w", p.Name, err)
		}
		path := filepath.Join(dir, p.Name+".html")
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func build(c report.Chart) components.Charter {
	if c.Kind == report.KindPie {
		pie := echarts.NewPie()
		pie.SetGlobalOptions(echarts.WithTitleOpts(opts.Title{Title: c.Title}))
		s := c.Series[0]
		data := lo.Map(c.Labels, func(l string, i int) opts.PieData {
			return opts.PieData{Name: l, Value: s.Values[i]}
		})
		pie.AddSeries(s.Name, data)
		return pie
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: c.Title}),
		echarts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}),
		echarts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
	)
	bar.SetXAxis(c.Labels)
	for _, s := range c.Series {
		data := lo.Map(s.Values, func(v float64, _ int) opts.BarData { return opts.BarData{Value: v} })
		if s.Color != "" {
			bar.AddSeries(s.Name, data, echarts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		} else {
			bar.AddSeries(s.Name, data)
		}
	}
	if c.Kind == report.KindHorizontalBar {
		bar.XYReversal()
	}
	return bar
}
