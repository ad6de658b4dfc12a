package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS resume_fragments (
    id           TEXT PRIMARY KEY,
    namespace    TEXT NOT NULL DEFAULT '',
    candidate_id TEXT NOT NULL,
    content      TEXT NOT NULL,
    embedding    TEXT NOT NULL,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_resume_fragments_candidate ON resume_fragments (namespace, candidate_id);`

type sqliteFragmentRow struct {
	ID          string `db:"id"`
	Namespace   string `db:"namespace"`
	CandidateID string `db:"candidate_id"`
	Content     string `db:"content"`
	Embedding   string `db:"embedding"`
}

// FragmentSQLiteRepository keeps fragments in a local SQLite file and ranks
// them by brute-force cosine similarity. Meant for development and tests.
type FragmentSQLiteRepository struct {
	db        *sqlx.DB
	namespace string
}

// OpenSQLite opens path (":memory:" for a throwaway store) and creates the schema.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// go-sqlite3 connections do not share an in-memory database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return db, nil
}

func NewFragmentSQLiteRepository(db *sqlx.DB, namespace string) *FragmentSQLiteRepository {
	return &FragmentSQLiteRepository{
		db:        db,
		namespace: namespace,
	}
}

func (r *FragmentSQLiteRepository) Upsert(ctx context.Context, fragments []entity.Fragment) error {
	rows := make([]sqliteFragmentRow, 0, len(fragments))
	for _, f := range fragments {
		embedding, err := json.Marshal(f.Vector)
		if err != nil {
			return fmt.Errorf("encode embedding: %w", err)
		}
		rows = append(rows, sqliteFragmentRow{
			ID:          f.ID,
			Namespace:   r.namespace,
			CandidateID: f.CandidateID,
			Content:     f.Text,
			Embedding:   string(embedding),
		})
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO resume_fragments (id, namespace, candidate_id, content, embedding)
VALUES (:id, :namespace, :candidate_id, :content, :embedding)`, rows)
	if err != nil {
		return fmt.Errorf("insert resume fragments: %w", err)
	}

	return nil
}

func (r *FragmentSQLiteRepository) Search(ctx context.Context, req entity.SearchRequest) ([]entity.ScoredFragment, error) {
	var rows []sqliteFragmentRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT id, namespace, candidate_id, content, embedding
FROM resume_fragments
WHERE namespace = ? AND (? = '' OR candidate_id = ?)`,
		r.namespace, req.CandidateID, req.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("query resume fragments: %w", err)
	}

	scored := make([]entity.ScoredFragment, 0, len(rows))
	for _, row := range rows {
		var vec []float32
		if err := json.Unmarshal([]byte(row.Embedding), &vec); err != nil {
			return nil, fmt.Errorf("decode embedding of fragment %s: %w", row.ID, err)
		}
		scored = append(scored, entity.ScoredFragment{
			ID:          row.ID,
			CandidateID: row.CandidateID,
			Text:        row.Content,
			Score:       cosineSimilarity(req.Vector, vec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if req.TopK > 0 && len(scored) > req.TopK {
		scored = scored[:req.TopK]
	}

	return scored, nil
}

// cosineSimilarity is 0 for mismatched dimensions or zero vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
