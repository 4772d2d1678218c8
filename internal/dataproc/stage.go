// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataproc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pdiddy/litpipe/internal/llm"
	"github.com/pdiddy/litpipe/internal/structured"
	"github.com/pdiddy/litpipe/pkg/types"
)

// Stage runs the statistical and visualization step over the literature
// stage's output.
type Stage struct {
	Completion llm.CompletionClient
	Render     types.RenderConfig
}

// NewStage wires the stage from its collaborators.
func NewStage(completion llm.CompletionClient, render types.RenderConfig) *Stage {
	return &Stage{Completion: completion, Render: render}
}

const dataSystemPrompt = `You are a professional medical literature data analyst processing the structured paper data returned by the literature analyst.
Rules:
1. The input is JSON with status, message and data fields; data is the paper list.
2. Extract the paper list from the data field and pass it to the data_process tool.
3. Use analysis type "all" so both statistics and charts are produced.
4. Output strict JSON with exactly four top-level fields: status, message, statistic, plot_paths. statistic holds total papers, method distribution, publish year distribution, journal distribution and the author count summary; plot_paths lists the chart file paths.
5. Output nothing except the JSON.
6. If the input is malformed or empty, return status=error with the reason.`

// Run executes the stage. It never returns an error; every failure mode is
// folded into a status=error envelope with an empty statistic and plot list.
func (s *Stage) Run(ctx context.Context, lit types.LiteratureResult) types.DataResult {
	slog.Info("data stage starting", "papers", len(lit.Data))

	input, err := json.Marshal(lit)
	if err != nil {
		return errorResult(fmt.Sprintf("encoding literature result: %v", err))
	}

	prompt := llm.Prompt{
		System: dataSystemPrompt,
		User:   fmt.Sprintf("Process the following paper data with analysis type all, producing full statistics and charts: %s", input),
	}
	raw, err := s.Completion.Invoke(ctx, prompt, &ProcessTool{Render: s.Render})
	if err != nil {
		return errorResult(fmt.Sprintf("data agent failed: %v", err))
	}

	var result types.DataResult
	if err := structured.Decode(raw, &result); err != nil {
		return errorResult(fmt.Sprintf("parsing data output: %v", err))
	}

	if !result.Status.Valid() {
		return errorResult(fmt.Sprintf("data agent returned unknown status %q", result.Status))
	}
	if result.PlotPaths == nil {
		result.PlotPaths = []string{}
	}
	slog.Info("data stage finished", "status", result.Status, "plots", len(result.PlotPaths))
	return result
}

func errorResult(msg string) types.DataResult {
	return types.DataResult{
		Status:    types.StatusError,
		Message:   msg,
		PlotPaths: []string{},
	}
}
