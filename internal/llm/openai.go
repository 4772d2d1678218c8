// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/litpipe/pkg/types"
)

// maxToolRounds bounds the function-calling loop so a model that keeps
// requesting the tool cannot spin forever.
const maxToolRounds = 5

// completionTemperature keeps stage output near-deterministic.
const completionTemperature = 0.1

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client against cfg's base URL and model.
func NewOpenAIClient(cfg types.LLMConfig) *OpenAIClient {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  cfg.ModelName,
	}
}

// Invoke runs one completion. When tool is non-nil the model is offered it
// and any tool calls are executed locally, with results appended to the
// conversation, until the model answers in plain text or maxToolRounds is
// reached.
func (o *OpenAIClient) Invoke(ctx context.Context, prompt Prompt, tool ToolSpec) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
		{Role: openai.ChatMessageRoleUser, Content: prompt.User},
	}

	var tools []openai.Tool
	if tool != nil {
		tools = []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		}}
	}

	for round := 0; ; round++ {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       o.model,
			Messages:    messages,
			Tools:       tools,
			Temperature: completionTemperature,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		if tool == nil || len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}
		if round >= maxToolRounds {
			return "", fmt.Errorf("tool loop exceeded %d rounds for %s", maxToolRounds, tool.Name())
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			if call.Function.Name != tool.Name() {
				return "", fmt.Errorf("model requested unknown tool %q", call.Function.Name)
			}
			slog.Debug("invoking tool", "tool", tool.Name(), "round", round)
			result, err := tool.Invoke(ctx, []byte(call.Function.Arguments))
			if err != nil {
				return "", fmt.Errorf("tool %s: %w", tool.Name(), err)
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}
}
