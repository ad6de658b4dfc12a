package llm

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

const chatCompletionsEndpoint = "/chat/completions"

var errEmptyCompletion = errors.New("completion has no content")

// Connector calls an OpenAI compatible chat completions API (Groq).
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, pkghttp.WithAuthToken(cfg.APIKey)),
		config:    cfg,
		logger:    logger,
	}
}

// Complete sends prompt as a single user message and returns the model text.
func (c *Connector) Complete(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "generating reply via LLM service", zap.String("model", c.config.Model))

	req := entity.LLMChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    []entity.LLMMessage{{Role: "user", Content: prompt}},
		Temperature: c.config.Temperature,
	}

	var resp entity.LLMChatCompletionResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, chatCompletionsEndpoint, req, &resp); err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errEmptyCompletion
	}

	text := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "reply generated successfully", zap.Int("reply_length", len(text)))

	return text, nil
}
