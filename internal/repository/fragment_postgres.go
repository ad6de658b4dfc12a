package repository

import (
	"context"
	"fmt"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const (
	insertFragmentSQL = `
INSERT INTO resume_fragments (id, namespace, candidate_id, content, embedding)
VALUES ($1, $2, $3, $4, $5)`

	// <=> is pgvector's cosine distance, so 1 - distance is cosine similarity.
	searchFragmentsSQL = `
SELECT id::text, candidate_id, content, 1 - (embedding <=> $1) AS score
FROM resume_fragments
WHERE namespace = $2 AND ($3::text = '' OR candidate_id = $3::text)
ORDER BY embedding <=> $1
LIMIT $4`
)

// FragmentPostgresRepository stores resume fragments in PostgreSQL with pgvector
type FragmentPostgresRepository struct {
	db        *pgxpool.Pool
	namespace string
}

func NewFragmentPostgresRepository(db *pgxpool.Pool, namespace string) *FragmentPostgresRepository {
	return &FragmentPostgresRepository{
		db:        db,
		namespace: namespace,
	}
}

// Upsert inserts all fragments in one batch
func (r *FragmentPostgresRepository) Upsert(ctx context.Context, fragments []entity.Fragment) error {
	batch := &pgx.Batch{}
	for _, f := range fragments {
		batch.Queue(insertFragmentSQL, f.ID, r.namespace, f.CandidateID, f.Text, pgvector.NewVector(f.Vector))
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert resume fragments: %w", err)
	}

	return nil
}

// Search returns the nearest fragments by cosine similarity
func (r *FragmentPostgresRepository) Search(ctx context.Context, req entity.SearchRequest) ([]entity.ScoredFragment, error) {
	rows, err := r.db.Query(ctx, searchFragmentsSQL, pgvector.NewVector(req.Vector), r.namespace, req.CandidateID, req.TopK)
	if err != nil {
		return nil, fmt.Errorf("query resume fragments: %w", err)
	}

	fragments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ScoredFragment, error) {
		var f entity.ScoredFragment
		err := row.Scan(&f.ID, &f.CandidateID, &f.Text, &f.Score)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan resume fragments: %w", err)
	}

	return fragments, nil
}
