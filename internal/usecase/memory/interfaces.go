package memory

import (
	"context"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

// Embedder must embed documents and queries with the same model.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// FragmentIndex is a vector store backend (Pinecone, pgvector, SQLite).
type FragmentIndex interface {
	Upsert(ctx context.Context, fragments []entity.Fragment) error
	Search(ctx context.Context, req entity.SearchRequest) ([]entity.ScoredFragment, error)
}
