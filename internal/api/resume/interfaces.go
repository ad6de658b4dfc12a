package resume

import (
	"context"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

type ResumeUsecase interface {
	Ingest(ctx context.Context, doc entity.Document, candidateID string) (string, error)
	AddText(ctx context.Context, text, candidateID string) error
}

type Retriever interface {
	Retrieve(ctx context.Context, query, candidateID string) entity.Retrieval
}
