package resume

import (
	"context"
	"fmt"
	"strings"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ResumeUsecase ingests resumes into candidate memory
type ResumeUsecase struct {
	extractor TextExtractor
	memory    Memory
	logger    *zap.Logger
}

func NewUsecase(
	extractor TextExtractor,
	memory Memory,
	logger *zap.Logger,
) *ResumeUsecase {
	return &ResumeUsecase{
		extractor: extractor,
		memory:    memory,
		logger:    logger,
	}
}

// Ingest extracts the document text and stores it. The candidate id
// defaults to the document filename and is returned.
func (uc *ResumeUsecase) Ingest(ctx context.Context, doc entity.Document, candidateID string) (string, error) {
	id := strings.TrimSpace(candidateID)
	if id == "" {
		id = doc.Filename
	}
	ctx = logger.WithCandidate(ctx, id)

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract resume: %w", err)
	}

	if err := uc.memory.Store(ctx, text, id); err != nil {
		return "", fmt.Errorf("store resume: %w", err)
	}

	ctxzap.Info(ctx, "resume ingested",
		zap.String("filename", doc.Filename),
		zap.String("media_type", doc.MediaType),
	)

	return id, nil
}

// AddText stores raw text for candidateID without extraction.
func (uc *ResumeUsecase) AddText(ctx context.Context, text, candidateID string) error {
	ctx = logger.WithCandidate(ctx, candidateID)

	if err := uc.memory.Store(ctx, text, candidateID); err != nil {
		return fmt.Errorf("store text: %w", err)
	}

	return nil
}
