// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package literature runs the first pipeline stage: a completion-driven
// PubMed retrieval that returns structured paper records. The model drives
// the search tool and formats the result; the deterministic classification
// rule is re-applied afterwards so model output never overrides it.
package literature

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/litpipe/internal/llm"
	"github.com/pdiddy/litpipe/internal/structured"
	"github.com/pdiddy/litpipe/pkg/types"
)

// Stage retrieves and structures literature for a keyword query.
type Stage struct {
	Completion llm.CompletionClient
	Search     Searcher
	MaxPapers  int
}

// NewStage wires the stage from its collaborators.
func NewStage(completion llm.CompletionClient, search Searcher, maxPapers int) *Stage {
	return &Stage{Completion: completion, Search: search, MaxPapers: maxPapers}
}

func (s *Stage) systemPrompt() string {
	return fmt.Sprintf(`You are a professional evidence-based medicine literature analyst. Process PubMed paper data strictly as follows:
1. Call the pubmed_search tool to obtain raw paper data, at most %d papers.
2. Extract and structure these fields for every paper:
   - title
   - publish_date
   - journal_name
   - methods_original: the original methods text
   - methods_classified: one of %s
   - conclusion
   - authors: list of author names
3. Classification rules:
   - RCT: text mentions rct or randomized controlled trial
   - cohort: text mentions cohort, prospective or retrospective cohort
   - case-control: text mentions case-control
   - cross-sectional: text mentions cross-sectional or prevalence survey
   - case-report: text mentions case report or case series
   - review: the paper is a review or meta-analysis
   - other: anything that matches none of the above
4. Output strict JSON with exactly three top-level fields:
   - status: success/warning/error
   - message: a short result description
   - data: the list of papers, each with all fields above
5. Output nothing except the JSON.`, s.MaxPapers, strings.Join(methodCategoryNames(), ", "))
}

func methodCategoryNames() []string {
	names := make([]string, 0, len(types.MethodCategories))
	for _, c := range types.MethodCategories {
		names = append(names, string(c))
	}
	return names
}

// Run executes the stage. It never returns an error; every failure mode is
// folded into a status=error envelope.
func (s *Stage) Run(ctx context.Context, keywords string) types.LiteratureResult {
	slog.Info("literature stage starting", "keywords", keywords)

	prompt := llm.Prompt{
		System: s.systemPrompt(),
		User:   fmt.Sprintf("Search keywords: %s. Return the structured JSON result exactly as required.", keywords),
	}
	raw, err := s.Completion.Invoke(ctx, prompt, &SearchTool{Client: s.Search})
	if err != nil {
		return types.LiteratureResult{
			Status:  types.StatusError,
			Message: fmt.Sprintf("literature agent failed: %v", err),
			Data:    []types.PaperRecord{},
		}
	}

	var result types.LiteratureResult
	if err := structured.Decode(raw, &result); err != nil {
		return types.LiteratureResult{
			Status:  types.StatusError,
			Message: fmt.Sprintf("parsing literature output: %v", err),
			Data:    []types.PaperRecord{},
		}
	}

	s.validate(&result)
	slog.Info("literature stage finished", "status", result.Status, "papers", len(result.Data))
	return result
}

// validate enforces the envelope contract on model output: a recognized
// status, sentinel-filled records, categories restricted to the closed set
// and a paper count bounded by MaxPapers.
func (s *Stage) validate(result *types.LiteratureResult) {
	if !result.Status.Valid() {
		result.Message = fmt.Sprintf("literature agent returned unknown status %q", result.Status)
		result.Status = types.StatusError
		result.Data = []types.PaperRecord{}
		return
	}
	if result.Data == nil {
		result.Data = []types.PaperRecord{}
	}
	if s.MaxPapers > 0 && len(result.Data) > s.MaxPapers {
		result.Data = result.Data[:s.MaxPapers]
	}
	for i := range result.Data {
		normalizeRecord(&result.Data[i])
	}
}

func normalizeRecord(p *types.PaperRecord) {
	fill := func(field *string) {
		if strings.TrimSpace(*field) == "" {
			*field = "unknown"
		}
	}
	fill(&p.Title)
	fill(&p.PublishDate)
	fill(&p.JournalName)
	if strings.TrimSpace(p.MethodsOriginal) == "" {
		p.MethodsOriginal = "not specified"
	}
	if strings.TrimSpace(p.Conclusion) == "" {
		p.Conclusion = "not specified"
	}
	if len(p.Authors) == 0 {
		p.Authors = []string{types.UnknownAuthor}
	}
	// A category outside the closed set is replaced by the deterministic
	// rule. "review" has no trigger but is a set member, so it survives.
	if !types.ValidMethodCategory(p.MethodsClassified) {
		p.MethodsClassified = types.ClassifyMethod(p.MethodsOriginal)
	}
}
