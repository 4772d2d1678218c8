// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChainStatus is the top-level pipeline outcome.
type ChainStatus string

const (
	ChainSuccess ChainStatus = "success"
	ChainFailed  ChainStatus = "failed"
)

// StageTag attributes a pipeline result to the stage that completed or
// failed.
type StageTag string

const (
	// StageRequest tags a malformed inbound payload.
	StageRequest StageTag = "request"

	// StageParams tags a semantic validation failure on inputs.
	StageParams StageTag = "params"

	// StageLiterature, StageData, and StageReport tag stage-level failures;
	// the message is inherited from the stage envelope.
	StageLiterature StageTag = "literature_agent"
	StageData       StageTag = "data_agent"
	StageReport     StageTag = "report_agent"

	// StageServer tags an uncaught failure at the request boundary.
	StageServer StageTag = "server"

	// StageFullChain tags an uncaught failure inside the orchestrator.
	StageFullChain StageTag = "full_chain"

	// StageCompleted tags a fully successful run.
	StageCompleted StageTag = "completed"
)

// StageResults nests the stage envelopes accumulated so far. On failure it
// carries whatever partial envelopes were produced before the halt.
type StageResults struct {
	Literature *LiteratureResult `json:"literature_result,omitempty"`
	Data       *DataResult       `json:"data_result,omitempty"`
	Report     *ReportResult     `json:"report_result,omitempty"`
}

// Summary condenses a fully successful run.
type Summary struct {
	Keywords           string   `json:"keywords"`
	TotalPapers        int      `json:"total_papers"`
	MainResearchMethod string   `json:"main_research_method"`
	ReportPath         string   `json:"report_path"`
	PlotPaths          []string `json:"plot_paths"`
}

// PipelineResult is the top-level output of one pipeline run. Message is
// always populated; Summary is present only when ChainStatus is
// ChainSuccess.
type PipelineResult struct {
	ChainStatus ChainStatus  `json:"chain_status"`
	Stage       StageTag     `json:"stage"`
	Message     string       `json:"message"`
	Results     StageResults `json:"results"`
	Summary     *Summary     `json:"summary,omitempty"`
}
