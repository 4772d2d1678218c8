// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataproc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/litpipe/internal/structured"
	"github.com/pdiddy/litpipe/pkg/types"
)

// ProcessTool exposes Process to the model as a callable function.
type ProcessTool struct {
	Render types.RenderConfig
}

func (t *ProcessTool) Name() string { return "data_process" }

func (t *ProcessTool) Description() string {
	return "Process structured paper records: compute statistics (paper count, method/year/journal distributions, author counts) and render distribution charts"
}

func (t *ProcessTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"papers_data": {
				"type": "array",
				"description": "the paper records from the literature analyst",
				"items": {"type": "object"}
			},
			"analysis_type": {
				"type": "string",
				"enum": ["stat", "plot", "all"],
				"description": "analysis to run, default all"
			}
		},
		"required": ["papers_data"]
	}`)
}

// Invoke runs the deterministic processor and returns the full result
// envelope as JSON.
func (t *ProcessTool) Invoke(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		PapersData   json.RawMessage `json:"papers_data"`
		AnalysisType string          `json:"analysis_type"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("parsing data_process arguments: %w", err)
	}

	papers, err := decodePapers(params.PapersData)
	if err != nil {
		return "", err
	}

	result := Process(papers, params.AnalysisType, t.Render)
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encoding data_process result: %w", err)
	}
	return string(out), nil
}

// decodePapers accepts the paper list either as a JSON array or, a common
// model artifact, as a string holding the (possibly fenced) array.
func decodePapers(raw json.RawMessage) ([]types.PaperRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var papers []types.PaperRecord
	if err := json.Unmarshal(raw, &papers); err == nil {
		return papers, nil
	}
	var encoded string
	if json.Unmarshal(raw, &encoded) == nil && structured.DecodeLenient(encoded, &papers) {
		return papers, nil
	}
	return nil, fmt.Errorf("papers_data is neither a paper list nor an encoded paper list")
}
