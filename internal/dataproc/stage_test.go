// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataproc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pdiddy/litpipe/internal/llm"
	"github.com/pdiddy/litpipe/pkg/types"
)

// passthroughCompletion invokes the tool with scripted args and returns the
// tool output verbatim, mimicking a model that echoes the tool result.
type passthroughCompletion struct {
	toolArgs string
	err      error
}

func (c *passthroughCompletion) Invoke(ctx context.Context, _ llm.Prompt, tool llm.ToolSpec) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return tool.Invoke(ctx, json.RawMessage(c.toolArgs))
}

func TestStageRunProcessesPapers(t *testing.T) {
	lit := types.LiteratureResult{
		Status: types.StatusSuccess,
		Data: []types.PaperRecord{
			paper(types.MethodRCT, "2022", "Lancet", "A", "B"),
			paper(types.MethodRCT, "2023", "BMJ", "A"),
		},
	}
	args, err := json.Marshal(map[string]any{
		"papers_data":   lit.Data,
		"analysis_type": AnalysisStat,
	})
	if err != nil {
		t.Fatal(err)
	}

	stage := NewStage(&passthroughCompletion{toolArgs: string(args)}, types.RenderConfig{})
	out := stage.Run(context.Background(), lit)

	if out.Status != types.StatusSuccess {
		t.Fatalf("status = %q (%s)", out.Status, out.Message)
	}
	if out.Statistic == nil || out.Statistic.TotalPapers != 2 {
		t.Errorf("Statistic = %+v", out.Statistic)
	}
	if got, _, ok := out.Statistic.MethodsClassifiedDistribution.Dominant(); !ok || got != string(types.MethodRCT) {
		t.Errorf("dominant method = %q", got)
	}
}

func TestStageRunCompletionError(t *testing.T) {
	stage := NewStage(&passthroughCompletion{err: errors.New("boom")}, types.RenderConfig{})
	out := stage.Run(context.Background(), types.LiteratureResult{Status: types.StatusSuccess})

	if out.Status != types.StatusError {
		t.Fatalf("status = %q, want error", out.Status)
	}
	if out.Statistic != nil || len(out.PlotPaths) != 0 {
		t.Errorf("error envelope not empty: %+v", out)
	}
}

func TestStageRunEmptyLiterature(t *testing.T) {
	stage := NewStage(&passthroughCompletion{toolArgs: `{"papers_data":[]}`}, types.RenderConfig{})
	out := stage.Run(context.Background(), types.LiteratureResult{Status: types.StatusWarning})

	if out.Status != types.StatusError {
		t.Fatalf("status = %q, want error", out.Status)
	}
}
