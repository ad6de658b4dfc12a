package pinecone

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
	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	metadataText        = "text"
	metadataCandidateID = "candidateId"
)

var ErrNotConfigured = errors.New("pinecone index is not configured")

// Connector is a Pinecone REST client implementing the fragment index.
// The data plane host is resolved from the control plane once per HostTTL.
type Connector struct {
	config    config.PineconeConnectorConfig
	connector *pkghttp.Connector
	hosts     *cache.Cache
	logger    *zap.Logger
}

func NewConnector(
	cfg config.PineconeConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithStaticHeader("X-Pinecone-API-Version", cfg.APIVersion),
			pkghttp.WithAPIKey("Api-Key", cfg.APIKey),
		),
		config: cfg,
		hosts:  cache.New(cfg.HostTTL, 2*cfg.HostTTL),
		logger: logger,
	}
}

// Upsert writes fragments with their text and candidate id as metadata.
func (c *Connector) Upsert(ctx context.Context, fragments []entity.Fragment) error {
	host, err := c.indexHost(ctx)
	if err != nil {
		return err
	}

	req := entity.PineconeUpsertRequest{
		Vectors:   make([]entity.PineconeVector, 0, len(fragments)),
		Namespace: c.config.Namespace,
	}
	for _, f := range fragments {
		req.Vectors = append(req.Vectors, entity.PineconeVector{
			ID:     f.ID,
			Values: f.Vector,
			Metadata: map[string]any{
				metadataText:        f.Text,
				metadataCandidateID: f.CandidateID,
			},
		})
	}

	var resp entity.PineconeUpsertResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, "", req, &resp, pkghttp.WithURL(host+"/vectors/upsert")); err != nil {
		return fmt.Errorf("pinecone upsert failed: %w", err)
	}

	ctxzap.Info(ctx, "vectors upserted", zap.Int("upserted_count", resp.UpsertedCount))
	return nil
}

// Search returns the nearest fragments ordered by descending score.
func (c *Connector) Search(ctx context.Context, search entity.SearchRequest) ([]entity.ScoredFragment, error) {
	host, err := c.indexHost(ctx)
	if err != nil {
		return nil, err
	}

	req := entity.PineconeQueryRequest{
		Vector:          search.Vector,
		TopK:            search.TopK,
		Namespace:       c.config.Namespace,
		IncludeMetadata: true,
	}
	if search.CandidateID != "" {
		req.Filter = map[string]any{
			metadataCandidateID: map[string]any{"$eq": search.CandidateID},
		}
	}

	var resp entity.PineconeQueryResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, "", req, &resp, pkghttp.WithURL(host+"/query")); err != nil {
		return nil, fmt.Errorf("pinecone query failed: %w", err)
	}

	fragments := make([]entity.ScoredFragment, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		text, _ := m.Metadata[metadataText].(string)
		candidateID, _ := m.Metadata[metadataCandidateID].(string)
		fragments = append(fragments, entity.ScoredFragment{
			ID:          m.ID,
			CandidateID: candidateID,
			Text:        text,
			Score:       m.Score,
		})
	}

	return fragments, nil
}

func (c *Connector) indexHost(ctx context.Context) (string, error) {
	if c.config.IndexHost != "" {
		return normalizeHost(c.config.IndexHost), nil
	}

	if c.config.Index == "" || c.config.APIKey == "" {
		return "", ErrNotConfigured
	}

	if host, ok := c.hosts.Get(c.config.Index); ok {
		return host.(string), nil
	}

	var desc entity.PineconeIndexDescription
	err := retry.Do(
		func() error {
			return c.connector.DoRequest(ctx, http.MethodGet, "/indexes/"+c.config.Index, nil, &desc)
		},
		append(c.config.Retry.ToRetryOptions(ctx), retry.RetryIf(isRetryable))...,
	)
	if err != nil {
		return "", fmt.Errorf("describe pinecone index %q: %w", c.config.Index, err)
	}

	if desc.Host == "" {
		return "", fmt.Errorf("describe pinecone index %q: empty host", c.config.Index)
	}

	host := normalizeHost(desc.Host)
	c.hosts.SetDefault(c.config.Index, host)
	ctxzap.Info(ctx, "pinecone index host resolved",
		zap.String("index", c.config.Index),
		zap.String("host", host),
		zap.Int("dimension", desc.Dimension),
	)

	return host, nil
}

// isRetryable retries network failures, throttling and server errors.
func isRetryable(err error) bool {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func normalizeHost(host string) string {
	host = strings.TrimRight(host, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return host
}
