// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline chains the three research stages. The orchestrator owns
// the transition rules only: a stage result with status error halts the
// chain with that stage's tag, success and warning let it proceed. It never
// talks to the completion client or any external API itself.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/litpipe/pkg/types"
)

// Stage interfaces, one per step, so tests can script transitions.
type (
	LiteratureStage interface {
		Run(ctx context.Context, keywords string) types.LiteratureResult
	}
	DataStage interface {
		Run(ctx context.Context, lit types.LiteratureResult) types.DataResult
	}
	ReportStage interface {
		Run(ctx context.Context, keywords string, lit types.LiteratureResult, data types.DataResult) types.ReportResult
	}
)

// Pipeline runs literature, data and report stages in sequence.
type Pipeline struct {
	Literature LiteratureStage
	Data       DataStage
	Report     ReportStage

	// Progress receives stage banners; defaults to io.Discard.
	Progress io.Writer
}

// New assembles a pipeline over the three stages.
func New(literature LiteratureStage, data DataStage, report ReportStage) *Pipeline {
	return &Pipeline{
		Literature: literature,
		Data:       data,
		Report:     report,
		Progress:   io.Discard,
	}
}

// Run executes the full chain for keywords. A panic anywhere inside the
// stages is converted to a failed result tagged full_chain.
func (p *Pipeline) Run(ctx context.Context, keywords string) (result types.PipelineResult) {
	defer func() {
		if r := recover(); r != nil {
			result = types.PipelineResult{
				ChainStatus: types.ChainFailed,
				Stage:       types.StageFullChain,
				Message:     fmt.Sprintf("pipeline execution failed: %v", r),
				Results:     types.StageResults{},
			}
		}
	}()

	w := p.Progress
	if w == nil {
		w = io.Discard
	}

	fmt.Fprintf(w, "===== [stage 1/3] searching and structuring PubMed literature =====\n")
	lit := p.Literature.Run(ctx, keywords)
	if !lit.Status.Proceed() {
		return types.PipelineResult{
			ChainStatus: types.ChainFailed,
			Stage:       types.StageLiterature,
			Message:     lit.Message,
			Results:     types.StageResults{Literature: &lit},
		}
	}

	fmt.Fprintf(w, "===== [stage 2/3] processing paper data and rendering charts =====\n")
	data := p.Data.Run(ctx, lit)
	if !data.Status.Proceed() {
		return types.PipelineResult{
			ChainStatus: types.ChainFailed,
			Stage:       types.StageData,
			Message:     data.Message,
			Results:     types.StageResults{Literature: &lit, Data: &data},
		}
	}

	fmt.Fprintf(w, "===== [stage 3/3] synthesizing the research report =====\n")
	report := p.Report.Run(ctx, keywords, lit, data)
	results := types.StageResults{Literature: &lit, Data: &data, Report: &report}
	if !report.Status.Proceed() {
		return types.PipelineResult{
			ChainStatus: types.ChainFailed,
			Stage:       types.StageReport,
			Message:     report.Message,
			Results:     results,
		}
	}

	fmt.Fprintf(w, "\n===== done =====\nreport: %s\nplots: %d\npapers analyzed: %d\n",
		report.ReportPath, len(data.PlotPaths), totalPapers(data))

	return types.PipelineResult{
		ChainStatus: types.ChainSuccess,
		Stage:       types.StageCompleted,
		Message:     "full pipeline completed, report generated",
		Results:     results,
		Summary:     summarize(keywords, data, report),
	}
}

func totalPapers(data types.DataResult) int {
	if data.Statistic == nil {
		return 0
	}
	return data.Statistic.TotalPapers
}

// summarize condenses the run for callers that do not want the full stage
// envelopes. The main research method is the first-encountered maximum of
// the ordered method distribution.
func summarize(keywords string, data types.DataResult, report types.ReportResult) *types.Summary {
	mainMethod := "unknown"
	if data.Statistic != nil {
		if key, _, ok := data.Statistic.MethodsClassifiedDistribution.Dominant(); ok {
			mainMethod = key
		}
	}
	return &types.Summary{
		Keywords:           keywords,
		TotalPapers:        totalPapers(data),
		MainResearchMethod: mainMethod,
		ReportPath:         report.ReportPath,
		PlotPaths:          data.PlotPaths,
	}
}
