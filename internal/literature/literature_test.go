// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package literature

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/litpipe/internal/llm"
	"github.com/pdiddy/litpipe/pkg/types"
)

// scriptedCompletion returns a fixed output, optionally invoking the tool
// first the way a real model would.
type scriptedCompletion struct {
	output   string
	err      error
	callTool bool
	toolArgs string
	toolOut  string
}

func (c *scriptedCompletion) Invoke(ctx context.Context, _ llm.Prompt, tool llm.ToolSpec) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if c.callTool && tool != nil {
		out, err := tool.Invoke(ctx, json.RawMessage(c.toolArgs))
		if err != nil {
			return "", err
		}
		c.toolOut = out
	}
	return c.output, nil
}

type fixedSearcher struct {
	result   types.LiteratureResult
	keywords string
}

func (s *fixedSearcher) SearchAndFetch(_ context.Context, keywords string) types.LiteratureResult {
	s.keywords = keywords
	return s.result
}

func envelopeJSON(t *testing.T, env types.LiteratureResult) string {
	t.Helper()
	b, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRunHappyPath(t *testing.T) {
	searcher := &fixedSearcher{result: types.LiteratureResult{
		Status:  types.StatusSuccess,
		Message: "retrieved 1 papers from PubMed",
		Data: []types.PaperRecord{{
			Title:             "Cohort study of statins",
			PublishDate:       "2021",
			JournalName:       "BMJ",
			MethodsOriginal:   "A prospective cohort of 5000 adults",
			MethodsClassified: types.MethodCohort,
			Conclusion:        "Risk reduced",
			Authors:           []string{"Lee K"},
		}},
	}}
	completion := &scriptedCompletion{
		callTool: true,
		toolArgs: `{"keywords":"statins"}`,
	}
	completion.output = envelopeJSON(t, searcher.result)

	stage := NewStage(completion, searcher, 10)
	out := stage.Run(context.Background(), "statins")

	if out.Status != types.StatusSuccess {
		t.Fatalf("status = %q (%s)", out.Status, out.Message)
	}
	if len(out.Data) != 1 || out.Data[0].MethodsClassified != types.MethodCohort {
		t.Errorf("unexpected data: %+v", out.Data)
	}
	if searcher.keywords != "statins" {
		t.Errorf("tool keywords = %q", searcher.keywords)
	}
	if completion.toolOut == "" {
		t.Error("tool result was not produced")
	}
}

func TestRunFencedOutput(t *testing.T) {
	env := types.LiteratureResult{Status: types.StatusSuccess, Data: []types.PaperRecord{{Title: "T"}}}
	completion := &scriptedCompletion{output: "```json\n" + envelopeJSON(t, env) + "\n```"}

	out := NewStage(completion, &fixedSearcher{}, 10).Run(context.Background(), "x")
	if out.Status != types.StatusSuccess || len(out.Data) != 1 {
		t.Fatalf("fenced output not parsed: %+v", out)
	}
}

func TestRunCompletionError(t *testing.T) {
	completion := &scriptedCompletion{err: errors.New("connection refused")}

	out := NewStage(completion, &fixedSearcher{}, 10).Run(context.Background(), "x")
	if out.Status != types.StatusError {
		t.Fatalf("status = %q, want error", out.Status)
	}
	if out.Data == nil || len(out.Data) != 0 {
		t.Errorf("Data = %v, want empty non-nil", out.Data)
	}
}

func TestRunUnparsableOutput(t *testing.T) {
	completion := &scriptedCompletion{output: "I could not find any papers, sorry!"}

	out := NewStage(completion, &fixedSearcher{}, 10).Run(context.Background(), "x")
	if out.Status != types.StatusError {
		t.Fatalf("status = %q, want error", out.Status)
	}
}

func TestValidateNormalizesRecords(t *testing.T) {
	env := types.LiteratureResult{
		Status: types.StatusSuccess,
		Data: []types.PaperRecord{
			{MethodsClassified: "quasi-experimental", MethodsOriginal: "a case-control design"},
			{MethodsClassified: types.MethodReview, MethodsOriginal: "narrative synthesis"},
		},
	}
	completion := &scriptedCompletion{output: envelopeJSON(t, env)}

	out := NewStage(completion, &fixedSearcher{}, 10).Run(context.Background(), "x")
	first := out.Data[0]
	if first.Title != "unknown" || first.JournalName != "unknown" || first.PublishDate != "unknown" {
		t.Errorf("sentinels not filled: %+v", first)
	}
	if first.Conclusion != "not specified" {
		t.Errorf("Conclusion = %q", first.Conclusion)
	}
	if len(first.Authors) != 1 || first.Authors[0] != types.UnknownAuthor {
		t.Errorf("Authors = %v", first.Authors)
	}
	// Out-of-set category falls back to the deterministic rule.
	if first.MethodsClassified != types.MethodCaseControl {
		t.Errorf("MethodsClassified = %q, want case-control", first.MethodsClassified)
	}
	// "review" is in the closed set and survives even with no trigger.
	if out.Data[1].MethodsClassified != types.MethodReview {
		t.Errorf("review overridden to %q", out.Data[1].MethodsClassified)
	}
}

func TestValidateBoundsPaperCount(t *testing.T) {
	env := types.LiteratureResult{Status: types.StatusSuccess}
	for i := 0; i < 7; i++ {
		env.Data = append(env.Data, types.PaperRecord{Title: fmt.Sprintf("P%d", i)})
	}
	completion := &scriptedCompletion{output: envelopeJSON(t, env)}

	out := NewStage(completion, &fixedSearcher{}, 3).Run(context.Background(), "x")
	if len(out.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3", len(out.Data))
	}
	if out.Data[0].Title != "P0" {
		t.Errorf("truncation changed order: %q", out.Data[0].Title)
	}
}

func TestValidateUnknownStatus(t *testing.T) {
	completion := &scriptedCompletion{output: `{"status":"partial","message":"","data":[{"title":"T"}]}`}

	out := NewStage(completion, &fixedSearcher{}, 10).Run(context.Background(), "x")
	if out.Status != types.StatusError {
		t.Fatalf("status = %q, want error", out.Status)
	}
	if len(out.Data) != 0 {
		t.Errorf("data kept for unknown status: %v", out.Data)
	}
}
