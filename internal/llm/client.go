// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm defines the completion interface the pipeline stages speak
// and its OpenAI-compatible implementation. Stages depend only on
// CompletionClient so tests can substitute a scripted client.
package llm

import (
	"context"
	"encoding/json"
)

// Prompt carries the two message roles a stage issues per call.
type Prompt struct {
	System string
	User   string
}

// ToolSpec describes a function the model may call during a completion.
// Invoke receives the model's argument object and returns the tool result
// serialized for the follow-up message.
type ToolSpec interface {
	Name() string
	Description() string
	Parameters() json.RawMessage
	Invoke(ctx context.Context, args json.RawMessage) (string, error)
}

// CompletionClient produces one completion for a prompt, running at most a
// bounded number of tool rounds when a ToolSpec is supplied. A nil tool
// requests a plain completion.
type CompletionClient interface {
	Invoke(ctx context.Context, prompt Prompt, tool ToolSpec) (string, error)
}
