// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AuthorCountStat summarizes per-paper author counts. Avg is rounded to
// two decimals.
type AuthorCountStat struct {
	Avg float64 `json:"avg"`
	Max int     `json:"max"`
	Min int     `json:"min"`
}

// StatisticSummary holds the aggregate statistics derived from one
// PaperRecord collection. It is recomputed fresh on every pipeline run and
// never cached.
type StatisticSummary struct {
	// TotalPapers is the number of records analyzed.
	TotalPapers int `json:"total_papers"`

	// MethodsClassifiedDistribution counts records per MethodCategory in
	// first-seen order.
	MethodsClassifiedDistribution *Distribution `json:"methods_classified_distribution"`

	// PublishYearDistribution counts records per publication year, with
	// "unknown" for unparseable dates.
	PublishYearDistribution *Distribution `json:"publish_year_distribution"`

	// JournalDistribution counts records for the ten most frequent journals.
	JournalDistribution *Distribution `json:"journal_distribution"`

	// AuthorCountStat summarizes the author-list lengths.
	AuthorCountStat AuthorCountStat `json:"author_count_stat"`
}
