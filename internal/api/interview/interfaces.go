package interview

import (
	"context"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

type InterviewUsecase interface {
	Chat(ctx context.Context, req *entity.ChatRequest) *entity.ChatResult
}
