// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"github.com/pdiddy/litpipe/internal/dataproc"
	"github.com/pdiddy/litpipe/internal/literature"
	"github.com/pdiddy/litpipe/internal/llm"
	"github.com/pdiddy/litpipe/internal/pubmed"
	"github.com/pdiddy/litpipe/internal/report"
	"github.com/pdiddy/litpipe/pkg/types"
)

// Build assembles a pipeline from the configuration: one shared completion
// client across the three stages, a PubMed client for the literature tool
// and the configured plot and report directories.
func Build(cfg types.PipelineConfig) *Pipeline {
	completion := llm.NewOpenAIClient(cfg.LLM)
	return New(
		literature.NewStage(completion, pubmed.New(cfg), cfg.Literature.MaxPapers),
		dataproc.NewStage(completion, cfg.Render),
		report.NewStage(completion, cfg.Report.ReportDir),
	)
}
