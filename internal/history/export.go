// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// exportLimit bounds how many runs an export includes.
const exportLimit = 1000

// ExportEntry is one run in the export file.
type ExportEntry struct {
	ID                 string `yaml:"id"`
	CreatedAt          string `yaml:"created_at"`
	Keywords           string `yaml:"keywords"`
	ChainStatus        string `yaml:"chain_status"`
	Stage              string `yaml:"stage"`
	Message            string `yaml:"message,omitempty"`
	TotalPapers        int    `yaml:"total_papers"`
	MainResearchMethod string `yaml:"main_research_method,omitempty"`
	ReportPath         string `yaml:"report_path,omitempty"`
	PlotCount          int    `yaml:"plot_count"`
}

// ExportYAML writes the recorded runs, newest first, to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	runs, err := s.Recent(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(runs))
	for i, r := range runs {
		entries[i] = ExportEntry{
			ID:                 r.ID,
			CreatedAt:          r.CreatedAt.Format(time.RFC3339),
			Keywords:           r.Keywords,
			ChainStatus:        r.ChainStatus,
			Stage:              r.Stage,
			Message:            r.Message,
			TotalPapers:        r.TotalPapers,
			MainResearchMethod: r.MainResearchMethod,
			ReportPath:         r.ReportPath,
			PlotCount:          r.PlotCount,
		}
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
