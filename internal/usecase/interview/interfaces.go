package interview

import (
	"context"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/memory"
)

type Memory interface {
	Query(ctx context.Context, text string, k int, opts ...memory.QueryOption) entity.Retrieval
}

type PromptComposer interface {
	Compose(userMessage, context string) string
}

type LLMConnector interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
