// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/litpipe/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	result := types.PipelineResult{
		ChainStatus: types.ChainSuccess,
		Stage:       types.StageCompleted,
		Message:     "full pipeline completed, report generated",
		Summary: &types.Summary{
			Keywords:           "diabetes",
			TotalPapers:        8,
			MainResearchMethod: string(types.MethodRCT),
			ReportPath:         "reports/r.md",
			PlotPaths:          []string{"a.png", "b.png", "c.png"},
		},
	}
	id, err := s.Record(ctx, "diabetes", result)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "diabetes", run.Keywords)
	assert.Equal(t, "success", run.ChainStatus)
	assert.Equal(t, "completed", run.Stage)
	assert.Equal(t, 8, run.TotalPapers)
	assert.Equal(t, "RCT", run.MainResearchMethod)
	assert.Equal(t, "reports/r.md", run.ReportPath)
	assert.Equal(t, 3, run.PlotCount)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestRecordFailedRunWithoutSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	result := types.PipelineResult{
		ChainStatus: types.ChainFailed,
		Stage:       types.StageLiterature,
		Message:     "pubmed down",
	}
	_, err := s.Record(ctx, "asthma", result)
	require.NoError(t, err)

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "failed", runs[0].ChainStatus)
	assert.Equal(t, "literature_agent", runs[0].Stage)
	assert.Zero(t, runs[0].TotalPapers)
	assert.Empty(t, runs[0].ReportPath)
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, fmt.Sprintf("kw%d", i), types.PipelineResult{
			ChainStatus: types.ChainSuccess,
			Stage:       types.StageCompleted,
		})
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	// Newest first.
	assert.Equal(t, "kw4", runs[0].Keywords)
	assert.Equal(t, "kw2", runs[2].Keywords)
}

func TestStoreReopensExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), "kw", types.PipelineResult{ChainStatus: types.ChainSuccess, Stage: types.StageCompleted})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewStore(dir)
	require.NoError(t, err)
	defer s2.Close()
	runs, err := s2.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
