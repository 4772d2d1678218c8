// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataproc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/pdiddy/litpipe/pkg/types"
)

const (
	defaultPlotWidth  = 1000
	defaultPlotHeight = 600
)

// renderPlots writes the three distribution charts under cfg.PlotDir and
// returns their paths. A chart whose series is empty is skipped without
// error.
func renderPlots(methods, years *types.Distribution, authorCounts []int, cfg types.RenderConfig) ([]string, error) {
	if cfg.PlotDir == "" {
		cfg.PlotDir = "plots"
	}
	if cfg.Format == "" {
		cfg.Format = types.PlotPNG
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultPlotWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultPlotHeight
	}
	if err := os.MkdirAll(cfg.PlotDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating plot directory: %w", err)
	}

	paths := []string{}

	if methods.Len() > 0 {
		p, err := renderMethodsPie(methods, cfg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if years.Len() > 0 {
		p, err := renderYearBars(years, cfg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if len(authorCounts) > 0 {
		p, err := renderAuthorHistogram(authorCounts, cfg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func renderMethodsPie(methods *types.Distribution, cfg types.RenderConfig) (string, error) {
	values := make([]chart.Value, 0, methods.Len())
	for _, k := range methods.Keys() {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", k, methods.Count(k)),
			Value: float64(methods.Count(k)),
		})
	}
	pie := chart.PieChart{
		Title:  "Research method distribution",
		Width:  cfg.Width,
		Height: cfg.Height,
		Values: values,
	}
	path := plotPath(cfg, "methods_classified_distribution")
	return path, renderToFile(path, cfg.Format, pie.Render)
}

func renderYearBars(years *types.Distribution, cfg types.RenderConfig) (string, error) {
	// Years ascending with the unknown bucket last.
	keys := years.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i] == unknownField || keys[j] == unknownField {
			return keys[j] == unknownField && keys[i] != unknownField
		}
		return keys[i] < keys[j]
	})

	bars := make([]chart.Value, 0, len(keys))
	for _, k := range keys {
		bars = append(bars, chart.Value{Label: k, Value: float64(years.Count(k))})
	}
	bar := chart.BarChart{
		Title:    "Publication year distribution",
		Width:    cfg.Width,
		Height:   cfg.Height,
		BarWidth: 40,
		Bars:     bars,
	}
	path := plotPath(cfg, "publish_year_distribution")
	return path, renderToFile(path, cfg.Format, bar.Render)
}

func renderAuthorHistogram(counts []int, cfg types.RenderConfig) (string, error) {
	bars := histogramBars(counts)
	bar := chart.BarChart{
		Title:    "Author count distribution",
		Width:    cfg.Width,
		Height:   cfg.Height,
		BarWidth: 40,
		Bars:     bars,
	}
	path := plotPath(cfg, "author_count_distribution")
	return path, renderToFile(path, cfg.Format, bar.Render)
}

// histogramBars buckets the counts into min(10, n) equal-width bins.
func histogramBars(counts []int) []chart.Value {
	lo, hi := counts[0], counts[0]
	for _, c := range counts {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}

	bins := len(counts)
	if bins > 10 {
		bins = 10
	}
	if lo == hi {
		return []chart.Value{{
			Label: fmt.Sprintf("%d", lo),
			Value: float64(len(counts)),
		}}
	}

	width := float64(hi-lo) / float64(bins)
	freq := make([]int, bins)
	for _, c := range counts {
		idx := int(float64(c-lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		freq[idx]++
	}

	bars := make([]chart.Value, 0, bins)
	for i, f := range freq {
		binLo := float64(lo) + width*float64(i)
		binHi := binLo + width
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%.1f-%.1f", binLo, binHi),
			Value: float64(f),
		})
	}
	return bars
}

func plotPath(cfg types.RenderConfig, name string) string {
	return filepath.Join(cfg.PlotDir, name+"."+string(cfg.Format))
}

func renderToFile(path string, format types.PlotFormat, render func(chart.RendererProvider, io.Writer) error) error {
	provider := chart.PNG
	if format == types.PlotSVG {
		provider = chart.SVG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := render(provider, f); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}
