package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MemoryUsecase stores resume text as embedded fragments and finds the ones
// closest to a query.
type MemoryUsecase struct {
	embedder Embedder
	index    FragmentIndex
	cfg      config.MemoryConfig
	logger   *zap.Logger
}

func NewUsecase(
	embedder Embedder,
	index FragmentIndex,
	cfg config.MemoryConfig,
	logger *zap.Logger,
) *MemoryUsecase {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	return &MemoryUsecase{
		embedder: embedder,
		index:    index,
		cfg:      cfg,
		logger:   logger,
	}
}

// Store embeds text and writes it under candidateID. Text below the minimum
// length is rejected before any provider call. Storing the same text twice
// yields two fragments.
func (uc *MemoryUsecase) Store(ctx context.Context, text, candidateID string) error {
	if err := validator.ValidateText(text); err != nil {
		return err
	}

	chunks := splitText(text, uc.cfg.ChunkSize, uc.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("%w: text is blank", entity.ErrTextTooShort)
	}
	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.MaxConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := uc.embedder.EmbedDocument(gctx, chunk)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		ctxzap.Error(ctx, "failed to embed resume text", zap.Error(err))
		return fmt.Errorf("%w: %w", entity.ErrStorage, err)
	}

	fragments := make([]entity.Fragment, len(chunks))
	for i, chunk := range chunks {
		fragments[i] = entity.Fragment{
			ID:          uuid.NewString(),
			CandidateID: candidateID,
			Text:        chunk,
			Vector:      vectors[i],
		}
	}

	if err := uc.index.Upsert(ctx, fragments); err != nil {
		ctxzap.Error(ctx, "failed to write fragments", zap.Error(err))
		return fmt.Errorf("%w: %w", entity.ErrStorage, err)
	}

	ctxzap.Info(ctx, "resume text stored",
		zap.String("candidate_id", candidateID),
		zap.Int("fragments", len(fragments)),
		zap.Int("text_chars", len(text)),
	)

	return nil
}

type queryOptions struct {
	candidateID string
}

type QueryOption func(*queryOptions)

// WithCandidate restricts a query to one candidate's fragments.
func WithCandidate(candidateID string) QueryOption {
	return func(o *queryOptions) {
		o.candidateID = candidateID
	}
}

// Query returns up to k fragments ordered by descending similarity. It never
// fails: provider or index errors come back as a degraded retrieval.
func (uc *MemoryUsecase) Query(ctx context.Context, text string, k int, opts ...QueryOption) entity.Retrieval {
	o := &queryOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if strings.TrimSpace(text) == "" || k < 1 {
		return entity.NewRetrieval(nil)
	}

	vec, err := uc.embedder.EmbedQuery(ctx, text)
	if err != nil {
		ctxzap.Warn(ctx, "retrieval degraded: embed query failed", zap.Error(err))
		return entity.DegradedRetrieval(fmt.Errorf("%w: embed query: %w", entity.ErrStorage, err))
	}

	hits, err := uc.index.Search(ctx, entity.SearchRequest{
		Vector:      vec,
		TopK:        k,
		CandidateID: o.candidateID,
	})
	if err != nil {
		ctxzap.Warn(ctx, "retrieval degraded: similarity search failed", zap.Error(err))
		return entity.DegradedRetrieval(fmt.Errorf("%w: search: %w", entity.ErrStorage, err))
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}

	ctxzap.Debug(ctx, "retrieval finished",
		zap.String("candidate_id", o.candidateID),
		zap.Int("fragments", len(hits)),
	)

	return entity.NewRetrieval(hits)
}
