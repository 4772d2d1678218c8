// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status is the outcome discriminant shared by every stage envelope.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Proceed reports whether the pipeline may advance past an envelope with
// this status. Success and warning both mean "proceed"; error halts the
// chain.
func (s Status) Proceed() bool {
	return s == StatusSuccess || s == StatusWarning
}

// Valid reports whether s is one of the three known status values.
func (s Status) Valid() bool {
	return s == StatusSuccess || s == StatusWarning || s == StatusError
}

// LiteratureResult is the literature stage envelope. Data is empty when
// Status is StatusError, except for the deliberate synthetic-fallback case
// documented in the pubmed package.
type LiteratureResult struct {
	Status  Status        `json:"status"`
	Message string        `json:"message"`
	Data    []PaperRecord `json:"data"`
}

// DataResult is the statistics/visualization stage envelope. Statistic is
// nil and PlotPaths empty when Status is StatusError.
type DataResult struct {
	Status    Status            `json:"status"`
	Message   string            `json:"message"`
	Statistic *StatisticSummary `json:"statistic,omitempty"`
	PlotPaths []string          `json:"plot_paths"`
}

// ReportMetadata echoes the inputs that produced a report.
type ReportMetadata struct {
	Keywords     string `json:"keywords"`
	GenerateTime string `json:"generate_time"`
	TotalPapers  int    `json:"total_papers"`
	PlotCount    int    `json:"plot_count"`
}

// ReportResult is the report stage envelope. Content, path, and metadata
// are empty when Status is StatusError.
type ReportResult struct {
	Status        Status          `json:"status"`
	Message       string          `json:"message"`
	ReportContent string          `json:"report_content"`
	ReportPath    string          `json:"report_path"`
	Metadata      *ReportMetadata `json:"metadata,omitempty"`
}
