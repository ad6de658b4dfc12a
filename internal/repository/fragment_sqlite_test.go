package repository

import (
	"context"
	"testing"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T, namespace string) *FragmentSQLiteRepository {
	t.Helper()

	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewFragmentSQLiteRepository(db, namespace)
}

func TestFragmentSQLite_SearchRanksByCosine(t *testing.T) {
	repo := newSQLiteRepo(t, "resumes")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []entity.Fragment{
		{ID: "far", CandidateID: "c1", Text: "cooking", Vector: []float32{0, 1, 0}},
		{ID: "near", CandidateID: "c1", Text: "distributed systems", Vector: []float32{1, 0.1, 0}},
		{ID: "mid", CandidateID: "c2", Text: "databases", Vector: []float32{1, 1, 0}},
	}))

	got, err := repo.Search(ctx, entity.SearchRequest{Vector: []float32{1, 0, 0}, TopK: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, "distributed systems", got[0].Text)
	assert.Equal(t, "mid", got[1].ID)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestFragmentSQLite_CandidateFilter(t *testing.T) {
	repo := newSQLiteRepo(t, "")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []entity.Fragment{
		{ID: "a", CandidateID: "c1", Text: "Go", Vector: []float32{1, 0}},
		{ID: "b", CandidateID: "c2", Text: "Rust", Vector: []float32{1, 0}},
	}))

	got, err := repo.Search(ctx, entity.SearchRequest{Vector: []float32{1, 0}, TopK: 5, CandidateID: "c2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].CandidateID)
}

func TestFragmentSQLite_NamespacesAreIsolated(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, NewFragmentSQLiteRepository(db, "a").Upsert(ctx, []entity.Fragment{
		{ID: "1", CandidateID: "c1", Text: "Go", Vector: []float32{1}},
	}))

	got, err := NewFragmentSQLiteRepository(db, "b").Search(ctx, entity.SearchRequest{Vector: []float32{1}, TopK: 2})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFragmentSQLite_EmptyIndex(t *testing.T) {
	got, err := newSQLiteRepo(t, "").Search(context.Background(), entity.SearchRequest{Vector: []float32{1}, TopK: 2})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{2, 0}, []float32{5, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}
