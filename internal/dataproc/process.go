// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataproc runs the second pipeline stage: deterministic statistics
// and chart rendering over the literature stage's paper records. The model
// drives the data_process tool; the tool body is the pure Process function
// so every number in the result is reproducible.
package dataproc

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/litpipe/pkg/types"
)

// Analysis type accepted by Process.
const (
	AnalysisStat = "stat"
	AnalysisPlot = "plot"
	AnalysisAll  = "all"
)

const unknownField = "unknown"

// Process computes the statistic summary for papers and, for analysis
// "plot" or "all", renders the distribution charts under cfg.PlotDir. It
// never returns an error; failures produce a status=error envelope.
func Process(papers []types.PaperRecord, analysis string, cfg types.RenderConfig) types.DataResult {
	if len(papers) == 0 {
		return types.DataResult{
			Status:    types.StatusError,
			Message:   "no valid papers to process",
			PlotPaths: []string{},
		}
	}
	if analysis == "" {
		analysis = AnalysisAll
	}

	methods := types.NewDistribution()
	years := types.NewDistribution()
	journals := types.NewDistribution()
	authorCounts := make([]int, 0, len(papers))

	for _, p := range papers {
		methods.Inc(string(normalizeCategory(p.MethodsClassified)))
		years.Inc(publishYear(p.PublishDate))
		journals.Inc(normalizeText(p.JournalName))
		authorCounts = append(authorCounts, len(p.Authors))
	}

	stat := &types.StatisticSummary{
		TotalPapers:                    len(papers),
		MethodsClassifiedDistribution:  methods,
		PublishYearDistribution:        years,
		JournalDistribution:            journals.TopN(10),
		AuthorCountStat:                authorStat(authorCounts),
	}

	plotPaths := []string{}
	if analysis == AnalysisPlot || analysis == AnalysisAll {
		paths, err := renderPlots(methods, years, authorCounts, cfg)
		if err != nil {
			return types.DataResult{
				Status:    types.StatusError,
				Message:   fmt.Sprintf("rendering plots: %v", err),
				PlotPaths: []string{},
			}
		}
		plotPaths = paths
	}

	return types.DataResult{
		Status:    types.StatusSuccess,
		Message:   fmt.Sprintf("processed %d papers, rendered %d plots", len(papers), len(plotPaths)),
		Statistic: stat,
		PlotPaths: plotPaths,
	}
}

func normalizeText(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownField
	}
	return s
}

func normalizeCategory(c types.MethodCategory) types.MethodCategory {
	if !types.ValidMethodCategory(c) {
		return types.MethodOther
	}
	return c
}

// publishYear reduces a publish date to a year bucket: the segment before
// the first "-", or an exactly-four-digit string as-is, or "unknown".
func publishYear(date string) string {
	date = strings.TrimSpace(date)
	if date == "" || date == unknownField {
		return unknownField
	}
	if i := strings.Index(date, "-"); i >= 0 {
		return date[:i]
	}
	if len(date) == 4 && isDigits(date) {
		return date
	}
	return unknownField
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// authorStat computes avg (rounded to two decimals), max and min over the
// per-paper author counts.
func authorStat(counts []int) types.AuthorCountStat {
	if len(counts) == 0 {
		return types.AuthorCountStat{}
	}
	sum, max, min := 0, counts[0], counts[0]
	for _, c := range counts {
		sum += c
		if c > max {
			max = c
		}
		if c < min {
			min = c
		}
	}
	avg := float64(sum) / float64(len(counts))
	return types.AuthorCountStat{
		Avg: math.Round(avg*100) / 100,
		Max: max,
		Min: min,
	}
}
