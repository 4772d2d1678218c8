// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report runs the final pipeline stage: it folds the literature and
// data envelopes into a document prompt, asks the completion client for a
// Markdown report and persists it with a keyword-stamped filename.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/litpipe/internal/llm"
	"github.com/pdiddy/litpipe/pkg/types"
)

const systemPrompt = `You are a professional medical research report writer. Integrate the literature analysis and data processing results into a structured, professional Markdown report.
Required modules, in order:
- Search overview: search keywords, total papers, data source (PubMed)
- Paper details: for each paper list title, publish date, journal, research background, methods (original text and classification), conclusion
- Statistical analysis: publish year distribution, research method distribution, journal distribution, author count summary
- Visualization index: generated chart paths and the dimension each covers
- Key conclusions: research trends such as the dominant method and publication trend
Paper details rules: one numbered entry per paper; derive a one or two sentence background from title, methods and conclusion, or write "not specified".
Statistical rules: present distributions as tables or lists; round numbers to two decimals.
Formatting rules: Markdown throughout with clear heading levels; professional, concise language.
Missing data rules: write "not specified" for empty fields and "no valid data" for empty statistics.`

const maxKeywordRunes = 20

// Stage synthesizes and persists the research report.
type Stage struct {
	Completion llm.CompletionClient
	Dir        string

	// now is the report timestamp source, replaceable in tests.
	now func() time.Time
}

// NewStage wires the stage from its collaborators.
func NewStage(completion llm.CompletionClient, dir string) *Stage {
	return &Stage{Completion: completion, Dir: dir, now: time.Now}
}

// Run generates the report for keywords from the two upstream envelopes. It
// never returns an error; every failure mode is folded into a status=error
// envelope with empty content, path and metadata.
func (s *Stage) Run(ctx context.Context, keywords string, lit types.LiteratureResult, data types.DataResult) types.ReportResult {
	slog.Info("report stage starting", "keywords", keywords)

	litJSON, err := json.MarshalIndent(lit, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encoding literature result: %v", err))
	}
	dataJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encoding data result: %v", err))
	}

	prompt := llm.Prompt{
		System: systemPrompt,
		User: fmt.Sprintf(`### Input data
Literature analysis result: %s
Data processing result: %s
Search keywords: %s

### Output requirement
Generate the Markdown research report exactly per the rules above. Output the report content directly with no extra commentary.`, litJSON, dataJSON, keywords),
	}

	content, err := s.Completion.Invoke(ctx, prompt, nil)
	if err != nil {
		return errorResult(fmt.Sprintf("report agent failed: %v", err))
	}
	if strings.TrimSpace(content) == "" {
		return errorResult("report agent returned empty content")
	}

	timestamp := s.timestamp()
	path := filepath.Join(s.Dir, fmt.Sprintf("research_report_%s_%s.md", sanitizeKeywords(keywords), timestamp))
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errorResult(fmt.Sprintf("creating report directory: %v", err))
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errorResult(fmt.Sprintf("writing report: %v", err))
	}

	totalPapers := 0
	if data.Statistic != nil {
		totalPapers = data.Statistic.TotalPapers
	}
	slog.Info("report stage finished", "path", path)
	return types.ReportResult{
		Status:        types.StatusSuccess,
		Message:       fmt.Sprintf("report generated and saved to %s", path),
		ReportContent: content,
		ReportPath:    path,
		Metadata: &types.ReportMetadata{
			Keywords:     keywords,
			GenerateTime: timestamp,
			TotalPapers:  totalPapers,
			PlotCount:    len(data.PlotPaths),
		},
	}
}

func (s *Stage) timestamp() string {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().Format("20060102_150405")
}

// sanitizeKeywords makes keywords filename-safe: path-unsafe runes become
// "_" and the result is capped at 20 runes.
func sanitizeKeywords(keywords string) string {
	var b strings.Builder
	for _, r := range keywords {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxKeywordRunes {
		runes = runes[:maxKeywordRunes]
	}
	return string(runes)
}

func errorResult(msg string) types.ReportResult {
	return types.ReportResult{
		Status:  types.StatusError,
		Message: msg,
	}
}
