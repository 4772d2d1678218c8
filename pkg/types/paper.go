// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the litpipe pipeline:
// the stage envelopes, the paper record collection they carry, the derived
// statistics, and the top-level pipeline result.
package types

import "strings"

// MethodCategory is a research-method classification. The set is closed:
// every PaperRecord carries exactly one of the values below, and downstream
// consumers rely on no other value ever appearing.
type MethodCategory string

const (
	MethodRCT            MethodCategory = "RCT"
	MethodCohort         MethodCategory = "cohort"
	MethodCaseControl    MethodCategory = "case-control"
	MethodCrossSectional MethodCategory = "cross-sectional"
	MethodCaseReport     MethodCategory = "case-report"
	MethodReview         MethodCategory = "review"
	MethodOther          MethodCategory = "other"
)

// MethodCategories lists the closed category set in classification
// priority order.
var MethodCategories = []MethodCategory{
	MethodRCT, MethodCohort, MethodCaseControl, MethodCrossSectional,
	MethodCaseReport, MethodReview, MethodOther,
}

// ValidMethodCategory reports whether c belongs to the closed category set.
func ValidMethodCategory(c MethodCategory) bool {
	for _, m := range MethodCategories {
		if c == m {
			return true
		}
	}
	return false
}

// methodTriggers maps each category to its case-insensitive substring
// triggers, checked in the order of classifyOrder. "review" has no trigger:
// it enters records only from the completion output.
var methodTriggers = map[MethodCategory][]string{
	MethodRCT:            {"rct", "randomized controlled trial", "randomised controlled trial"},
	MethodCohort:         {"cohort", "prospective", "retrospective cohort"},
	MethodCaseControl:    {"case-control", "case control"},
	MethodCrossSectional: {"cross-sectional", "cross sectional", "prevalence survey"},
	MethodCaseReport:     {"case report", "case series"},
}

// classifyOrder fixes the priority of trigger checks: RCT terms before
// cohort terms, before case-control, before cross-sectional, before
// case-report.
var classifyOrder = []MethodCategory{
	MethodRCT, MethodCohort, MethodCaseControl, MethodCrossSectional, MethodCaseReport,
}

// ClassifyMethod maps free-text methods prose to a MethodCategory using a
// deterministic, case-insensitive keyword rule. The rule is the ground
// truth for classification: it is reproducible without a language model,
// and anything unmatched falls into MethodOther.
func ClassifyMethod(methodsText string) MethodCategory {
	lower := strings.ToLower(methodsText)
	for _, cat := range classifyOrder {
		for _, trigger := range methodTriggers[cat] {
			if strings.Contains(lower, trigger) {
				return cat
			}
		}
	}
	return MethodOther
}

// UnknownAuthor is the sentinel entry substituted for an empty author list.
const UnknownAuthor = "unknown author"

// PaperRecord is one literature item. Records are created by the literature
// stage (from PubMed data or the synthetic fallback), consumed read-only by
// the statistics stage, and never mutated afterward.
type PaperRecord struct {
	// Title is the article title, "unknown" when absent.
	Title string `json:"title" yaml:"title"`

	// PublishDate is free text parseable to a year ("2023-05-01", "2023")
	// or "unknown". Print publication dates are preferred over electronic
	// dates at extraction time.
	PublishDate string `json:"publish_date" yaml:"publish_date"`

	// JournalName is the journal title, "unknown" when absent.
	JournalName string `json:"journal_name" yaml:"journal_name"`

	// MethodsOriginal is the methods prose from the abstract.
	MethodsOriginal string `json:"methods_original" yaml:"methods_original"`

	// MethodsClassified is the closed-set classification of MethodsOriginal.
	MethodsClassified MethodCategory `json:"methods_classified" yaml:"methods_classified"`

	// Conclusion is the conclusion prose, "not specified" when absent.
	Conclusion string `json:"conclusion" yaml:"conclusion"`

	// Authors lists authors as "LastName Initials". Never empty: an empty
	// extraction is replaced by a single UnknownAuthor entry.
	Authors []string `json:"authors" yaml:"authors"`
}
