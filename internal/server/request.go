// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/litpipe/pkg/types"
)

const defaultMaxPapers = 10

// requestValidate is the validator instance for research requests.
// Initialized in init() with the custom contact rule.
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()
	_ = requestValidate.RegisterValidation("contact", validateContact)
}

// validateContact checks that an email field carries an "@". The original
// form only ever enforced this much.
func validateContact(fl validator.FieldLevel) bool {
	return strings.Contains(fl.Field().String(), "@")
}

// ResearchRequest is the POST /research body.
type ResearchRequest struct {
	Keywords     string       `json:"keywords" validate:"required"`
	LLMConfig    LLMConfig    `json:"llm_config" validate:"required"`
	AgentConfig  AgentConfig  `json:"agent_config"`
	PubMedConfig PubMedConfig `json:"pubmed_config" validate:"required"`
}

type LLMConfig struct {
	APIKey    string `json:"api_key" validate:"required"`
	BaseURL   string `json:"base_url" validate:"required"`
	ModelName string `json:"model_name" validate:"required"`
}

type AgentConfig struct {
	MaxPapers int `json:"max_papers" validate:"gte=1"`
}

type PubMedConfig struct {
	Email string `json:"email" validate:"required,contact"`
}

// fieldMessages maps a failing validator field to the message reported to
// the caller.
var fieldMessages = map[string]string{
	"Keywords":  "search keywords must not be empty",
	"APIKey":    "LLM API key must not be empty",
	"BaseURL":   "LLM base URL must not be empty",
	"ModelName": "model name must not be empty",
	"MaxPapers": "max papers must be a positive integer",
	"Email":     `PubMed contact email must contain "@"`,
}

// EnsureDefaults populates optional fields before validation.
func (r *ResearchRequest) EnsureDefaults() {
	r.Keywords = strings.TrimSpace(r.Keywords)
	if r.AgentConfig.MaxPapers == 0 {
		r.AgentConfig.MaxPapers = defaultMaxPapers
	}
}

// Validate checks the request and returns per-field messages for every
// failing field, in declaration order.
func (r *ResearchRequest) Validate() []string {
	err := requestValidate.Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()]; ok {
			msgs = append(msgs, msg)
		} else {
			msgs = append(msgs, fe.Error())
		}
	}
	return msgs
}

// PipelineConfig converts the request into the immutable configuration the
// orchestrator consumes, folding in the server's directory settings.
func (r *ResearchRequest) PipelineConfig(base types.PipelineConfig) types.PipelineConfig {
	cfg := base
	cfg.LLM = types.LLMConfig{
		APIKey:    r.LLMConfig.APIKey,
		BaseURL:   r.LLMConfig.BaseURL,
		ModelName: r.LLMConfig.ModelName,
	}
	cfg.Literature.MaxPapers = r.AgentConfig.MaxPapers
	cfg.EntrezEmail = r.PubMedConfig.Email
	return cfg
}
