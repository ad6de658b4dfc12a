package interview

import (
	"context"
	"fmt"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/memory"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// InterviewUsecase answers candidate messages as an AI interviewer grounded
// in the candidate's stored resume.
type InterviewUsecase struct {
	memory   Memory
	composer PromptComposer
	llm      LLMConnector
	topK     int
	logger   *zap.Logger
}

func NewUsecase(
	memory Memory,
	composer PromptComposer,
	llm LLMConnector,
	topK int,
	logger *zap.Logger,
) *InterviewUsecase {
	if topK < 1 {
		topK = 2
	}
	return &InterviewUsecase{
		memory:   memory,
		composer: composer,
		llm:      llm,
		topK:     topK,
		logger:   logger,
	}
}

// Retrieve fetches the fragments most relevant to query. An empty
// candidateID searches every candidate.
func (uc *InterviewUsecase) Retrieve(ctx context.Context, query, candidateID string) entity.Retrieval {
	var opts []memory.QueryOption
	if candidateID != "" {
		opts = append(opts, memory.WithCandidate(candidateID))
	}
	return uc.memory.Query(ctx, query, uc.topK, opts...)
}

// Generate sends prompt to the language model. A provider failure yields the
// fallback reply with the cause attached.
func (uc *InterviewUsecase) Generate(ctx context.Context, prompt string) entity.Reply {
	text, err := uc.llm.Complete(ctx, prompt)
	if err != nil {
		ctxzap.Error(ctx, "generation failed, sending fallback reply", zap.Error(err))
		return entity.Reply{
			Text:     entity.FallbackReply,
			Fallback: true,
			Cause:    fmt.Errorf("%w: %w", entity.ErrGeneration, err),
		}
	}
	return entity.Reply{Text: text}
}

// Chat runs retrieve, compose and generate for one message. Retrieval and
// generation failures degrade the answer but never fail the call.
func (uc *InterviewUsecase) Chat(ctx context.Context, req *entity.ChatRequest) *entity.ChatResult {
	ctx = logger.WithCandidate(ctx, req.CandidateID)

	retrieval := uc.Retrieve(ctx, req.Message, req.CandidateID)
	prompt := uc.composer.Compose(req.Message, retrieval.Context())
	reply := uc.Generate(ctx, prompt)

	ctxzap.Info(ctx, "chat message answered",
		zap.String("retrieval_status", string(retrieval.Status)),
		zap.Int("fragments", len(retrieval.Fragments)),
		zap.Bool("fallback_reply", reply.Fallback),
	)

	return &entity.ChatResult{
		Reply:       reply.Text,
		ContextUsed: retrieval.Found(),
	}
}
