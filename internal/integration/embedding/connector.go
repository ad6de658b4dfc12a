package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/integration/common"
	pkghttp "github.com/ANKITsingh-git2/hireflow-ai-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

var errEmptyEmbedding = errors.New("embedding response has no values")

// Connector talks to the Google Generative Language embedContent API.
type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	extra := []pkghttp.HttpOpts{pkghttp.WithAPIKey("x-goog-api-key", cfg.APIKey)}
	if cfg.ProjectID != "" {
		extra = append(extra, pkghttp.WithStaticHeader("x-goog-user-project", cfg.ProjectID))
	}

	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, extra...),
		config:    cfg,
		logger:    logger,
	}
}

// EmbedDocument embeds text that is going to be stored.
func (c *Connector) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, text, taskRetrievalDocument)
}

// EmbedQuery embeds a search query with the same model as EmbedDocument.
func (c *Connector) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, text, taskRetrievalQuery)
}

func (c *Connector) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	model := strings.TrimPrefix(c.config.Model, "models/")
	endpoint := fmt.Sprintf("/models/%s:embedContent", model)

	req := entity.EmbedContentRequest{
		Model:    "models/" + model,
		Content:  entity.EmbeddingContent{Parts: []entity.EmbeddingPart{{Text: text}}},
		TaskType: taskType,
	}

	var resp entity.EmbedContentResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("embed content failed: %w", err)
	}

	if len(resp.Embedding.Values) == 0 {
		return nil, errEmptyEmbedding
	}

	ctxzap.Debug(ctx, "text embedded",
		zap.String("task_type", taskType),
		zap.Int("dimension", len(resp.Embedding.Values)),
	)

	return resp.Embedding.Values, nil
}
