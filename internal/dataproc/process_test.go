// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataproc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/litpipe/pkg/types"
)

func paper(method types.MethodCategory, date, journal string, authors ...string) types.PaperRecord {
	return types.PaperRecord{
		Title:             "T",
		PublishDate:       date,
		JournalName:       journal,
		MethodsClassified: method,
		Authors:           authors,
	}
}

func TestProcessStatistics(t *testing.T) {
	papers := []types.PaperRecord{
		paper(types.MethodRCT, "2023-05-01", "Lancet", "A"),
		paper(types.MethodRCT, "2023-11", "Lancet", "A", "B", "C"),
		paper(types.MethodCohort, "2021", "BMJ", "A", "B"),
	}

	out := Process(papers, AnalysisStat, types.RenderConfig{})
	if out.Status != types.StatusSuccess {
		t.Fatalf("status = %q (%s)", out.Status, out.Message)
	}
	stat := out.Statistic
	if stat.TotalPapers != 3 {
		t.Errorf("TotalPapers = %d", stat.TotalPapers)
	}
	if got := stat.MethodsClassifiedDistribution.Count(string(types.MethodRCT)); got != 2 {
		t.Errorf("RCT count = %d, want 2", got)
	}
	if got := stat.MethodsClassifiedDistribution.Count(string(types.MethodCohort)); got != 1 {
		t.Errorf("cohort count = %d, want 1", got)
	}
	if got := stat.PublishYearDistribution.Count("2023"); got != 2 {
		t.Errorf("2023 count = %d, want 2", got)
	}
	if got := stat.PublishYearDistribution.Count("2021"); got != 1 {
		t.Errorf("2021 count = %d, want 1", got)
	}
	if got := stat.JournalDistribution.Count("Lancet"); got != 2 {
		t.Errorf("Lancet count = %d, want 2", got)
	}
	// avg of [1,3,2] = 2.0
	if stat.AuthorCountStat.Avg != 2.0 || stat.AuthorCountStat.Max != 3 || stat.AuthorCountStat.Min != 1 {
		t.Errorf("AuthorCountStat = %+v", stat.AuthorCountStat)
	}
	if len(out.PlotPaths) != 0 {
		t.Errorf("stat analysis rendered plots: %v", out.PlotPaths)
	}
}

func TestProcessAvgRounding(t *testing.T) {
	papers := []types.PaperRecord{
		paper(types.MethodOther, "2020", "J", "A"),
		paper(types.MethodOther, "2020", "J", "A"),
		paper(types.MethodOther, "2020", "J", "A", "B"),
	}
	out := Process(papers, AnalysisStat, types.RenderConfig{})
	// avg of [1,1,2] = 1.333... → 1.33
	if got := out.Statistic.AuthorCountStat.Avg; got != 1.33 {
		t.Errorf("Avg = %v, want 1.33", got)
	}
}

func TestProcessNormalizesMissingFields(t *testing.T) {
	papers := []types.PaperRecord{
		{MethodsClassified: "bogus-category"},
	}
	out := Process(papers, AnalysisStat, types.RenderConfig{})
	stat := out.Statistic
	if got := stat.MethodsClassifiedDistribution.Count(string(types.MethodOther)); got != 1 {
		t.Errorf("other count = %d, want 1", got)
	}
	if got := stat.PublishYearDistribution.Count("unknown"); got != 1 {
		t.Errorf("unknown year count = %d, want 1", got)
	}
	if got := stat.JournalDistribution.Count("unknown"); got != 1 {
		t.Errorf("unknown journal count = %d, want 1", got)
	}
	if stat.AuthorCountStat.Max != 0 {
		t.Errorf("Max = %d, want 0", stat.AuthorCountStat.Max)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	out := Process(nil, AnalysisAll, types.RenderConfig{})
	if out.Status != types.StatusError {
		t.Fatalf("status = %q, want error", out.Status)
	}
	if out.Statistic != nil {
		t.Errorf("Statistic = %+v, want nil", out.Statistic)
	}
}

func TestPublishYear(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2023-05-01", "2023"},
		{"2023-05", "2023"},
		{"2023", "2023"},
		{"", "unknown"},
		{"unknown", "unknown"},
		{"May 2023", "unknown"},
		{"202", "unknown"},
	}
	for _, c := range cases {
		if got := publishYear(c.in); got != c.want {
			t.Errorf("publishYear(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestProcessJournalTopTen(t *testing.T) {
	var papers []types.PaperRecord
	for i := 0; i < 12; i++ {
		papers = append(papers, paper(types.MethodOther, "2020", string(rune('A'+i))))
	}
	// Make journal "L" appear twice so it must survive the cut.
	papers = append(papers, paper(types.MethodOther, "2020", "L"))

	out := Process(papers, AnalysisStat, types.RenderConfig{})
	jd := out.Statistic.JournalDistribution
	if jd.Len() != 10 {
		t.Fatalf("journal buckets = %d, want 10", jd.Len())
	}
	if jd.Count("L") != 2 {
		t.Errorf("top journal missing: %v", jd.Keys())
	}
}

func TestProcessRendersPlots(t *testing.T) {
	dir := t.TempDir()
	papers := []types.PaperRecord{
		paper(types.MethodRCT, "2023", "Lancet", "A"),
		paper(types.MethodCohort, "2021", "BMJ", "A", "B", "C"),
		paper(types.MethodRCT, "unknown", "BMJ", "A", "B"),
	}

	out := Process(papers, AnalysisAll, types.RenderConfig{PlotDir: dir, Format: types.PlotPNG})
	if out.Status != types.StatusSuccess {
		t.Fatalf("status = %q (%s)", out.Status, out.Message)
	}
	want := []string{
		filepath.Join(dir, "methods_classified_distribution.png"),
		filepath.Join(dir, "publish_year_distribution.png"),
		filepath.Join(dir, "author_count_distribution.png"),
	}
	if len(out.PlotPaths) != len(want) {
		t.Fatalf("PlotPaths = %v", out.PlotPaths)
	}
	for i, p := range want {
		if out.PlotPaths[i] != p {
			t.Errorf("PlotPaths[%d] = %q, want %q", i, out.PlotPaths[i], p)
		}
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("plot not written: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("plot %s is empty", p)
		}
	}
}

func TestHistogramBarsSingleValue(t *testing.T) {
	bars := histogramBars([]int{3, 3, 3})
	if len(bars) != 1 || bars[0].Value != 3 {
		t.Errorf("bars = %+v", bars)
	}
}

func TestHistogramBarsBounded(t *testing.T) {
	counts := make([]int, 25)
	for i := range counts {
		counts[i] = i
	}
	bars := histogramBars(counts)
	if len(bars) != 10 {
		t.Fatalf("bins = %d, want 10", len(bars))
	}
	var total float64
	for _, b := range bars {
		total += b.Value
	}
	if total != 25 {
		t.Errorf("histogram total = %v, want 25", total)
	}
}
