package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasishta03/DataForge/internal/generator"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := NewRunStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sealedResult(id, keyword string, files ...string) *generator.Result {
	return &generator.Result{
		ID:             id,
		Keyword:        keyword,
		ReferenceFile:  "/data/reference/" + keyword + ".csv",
		GeneratedFiles: files,
		Elapsed:        1500 * time.Millisecond,
		Outcome:        generator.OutcomeCompleted,
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)

	res := sealedResult("run-1", "finance", "/out/finance_data_1.csv", "/out/finance_data_2.csv")
	require.NoError(t, s.SaveResult(res))

	rec, err := s.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "finance", rec.Keyword)
	assert.Equal(t, string(generator.OutcomeCompleted), rec.Outcome)
	assert.InDelta(t, 1.5, rec.ElapsedSeconds, 0.001)
	assert.Equal(t, []string{"/out/finance_data_1.csv", "/out/finance_data_2.csv"}, rec.GeneratedFiles,
		"file order preserved")
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun("missing")
	assert.Error(t, err)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveResult(sealedResult("run-a", "finance", "/out/a.csv")))
	require.NoError(t, s.SaveResult(sealedResult("run-b", "retail")))

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]RunRecord{}
	for _, r := range runs {
		byID[r.ID] = r
	}
	assert.Equal(t, []string{"/out/a.csv"}, byID["run-a"].GeneratedFiles)
	assert.Empty(t, byID["run-b"].GeneratedFiles)
}

func TestListRuns_Limit(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, s.SaveResult(sealedResult(id, "demo")))
	}
	runs, err := s.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSaveResult_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveResult(sealedResult("dup", "demo")))
	assert.Error(t, s.SaveResult(sealedResult("dup", "demo")))
}
