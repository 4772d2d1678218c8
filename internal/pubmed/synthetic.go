// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"fmt"

	"github.com/pdiddy/litpipe/pkg/types"
)

// syntheticCount fixes the size of the placeholder dataset.
const syntheticCount = 10

// SyntheticPapers returns the deterministic placeholder dataset substituted
// when PubMed is unreachable. Field values are fixed so tests downstream of
// a failed search see identical input on every run.
func SyntheticPapers() []types.PaperRecord {
	methods := "Randomized controlled trial (RCT) with 100 patients assigned to treatment and control arms"
	papers := make([]types.PaperRecord, 0, syntheticCount)
	for i := 1; i <= syntheticCount; i++ {
		papers = append(papers, types.PaperRecord{
			Title:             fmt.Sprintf("Placeholder Paper %d", i),
			PublishDate:       "2024-01-01",
			JournalName:       "Placeholder Journal",
			MethodsOriginal:   methods,
			MethodsClassified: types.ClassifyMethod(methods),
			Conclusion:        "Placeholder conclusion: the intervention was effective",
			Authors:           []string{"Author A"},
		})
	}
	return papers
}
