package resume

import (
	"context"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

type TextExtractor interface {
	Extract(ctx context.Context, doc entity.Document) (string, error)
}

type Memory interface {
	Store(ctx context.Context, text, candidateID string) error
}
