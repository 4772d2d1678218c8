// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litpipe/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMConfig holds the completion-function endpoint and credentials. The
// endpoint is OpenAI-compatible; BaseURL selects the provider.
type LLMConfig struct {
	// BaseURL is the OpenAI-compatible API base URL.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the completion endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// ModelName is the model identifier (e.g. "qwen-plus").
	ModelName string `json:"model_name" yaml:"model_name"`
}

// LiteratureConfig holds settings for the literature retrieval stage.
type LiteratureConfig struct {
	// MaxPapers bounds the number of papers retrieved (default 10).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`
}

// PlotFormat selects the visualization image format.
type PlotFormat string

const (
	PlotPNG PlotFormat = "png"
	PlotSVG PlotFormat = "svg"
)

// RenderConfig holds settings for the visualization renderer. It is passed
// into the statistics stage at construction; there is no process-wide
// mutable plotting state.
type RenderConfig struct {
	// PlotDir is the directory plot files are written to (created if absent).
	PlotDir string `json:"plot_dir" yaml:"plot_dir"`

	// Format is the image format for plot files.
	Format PlotFormat `json:"format" yaml:"format"`

	// Width and Height are the chart dimensions in pixels. Zero values use
	// the renderer defaults.
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`
}

// ReportConfig holds settings for the report synthesis stage.
type ReportConfig struct {
	// ReportDir is the directory reports are written to (created if absent).
	ReportDir string `json:"report_dir" yaml:"report_dir"`
}

// PipelineConfig is the immutable input to one pipeline run. It is
// constructed once at the request boundary, passed by value into the
// orchestrator, and never mutated during a run.
type PipelineConfig struct {
	LLM        LLMConfig        `json:"llm" yaml:"llm"`
	Literature LiteratureConfig `json:"literature" yaml:"literature"`
	Render     RenderConfig     `json:"render" yaml:"render"`
	Report     ReportConfig     `json:"report" yaml:"report"`

	// EntrezEmail is the contact identifier sent with PubMed E-utilities
	// requests. NCBI requires it to be a reachable address.
	EntrezEmail string `json:"entrez_email" yaml:"entrez_email"`

	HTTP HTTPConfig `json:"http" yaml:"http"`
}

// Validate checks the semantic constraints on a PipelineConfig. Violations
// are reported with the same messages the request boundary returns under
// the "params" stage tag.
func (c PipelineConfig) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key must not be empty")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM base URL must not be empty")
	}
	if c.LLM.ModelName == "" {
		return fmt.Errorf("model name must not be empty")
	}
	if c.Literature.MaxPapers < 1 {
		return fmt.Errorf("max papers must be a positive integer")
	}
	if !strings.Contains(c.EntrezEmail, "@") {
		return fmt.Errorf("PubMed contact email must contain %q", "@")
	}
	return nil
}
