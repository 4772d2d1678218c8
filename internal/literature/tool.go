// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package literature

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/litpipe/pkg/types"
)

// Searcher is the PubMed surface the stage needs.
type Searcher interface {
	SearchAndFetch(ctx context.Context, keywords string) types.LiteratureResult
}

// SearchTool exposes the PubMed client to the model as a callable function.
type SearchTool struct {
	Client Searcher
}

func (t *SearchTool) Name() string { return "pubmed_search" }

func (t *SearchTool) Description() string {
	return "Search PubMed for academic papers matching the keywords and return structured paper records"
}

func (t *SearchTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"keywords": {"type": "string", "description": "search terms for PubMed"}
		},
		"required": ["keywords"]
	}`)
}

// Invoke runs the search and returns the full result envelope as JSON so
// the model sees status, message and data together.
func (t *SearchTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Keywords string `json:"keywords"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("parsing pubmed_search arguments: %w", err)
	}

	result := t.Client.SearchAndFetch(ctx, params.Keywords)
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encoding pubmed_search result: %w", err)
	}
	return string(out), nil
}
