// Package client talks to the HireFlow HTTP API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	pkgHTTP "github.com/ANKITsingh-git2/hireflow-ai-backend/pkg/http"
)

// RequestIDHeader is read by the server's request id middleware, so client and
// server log lines for one call share an id.
const RequestIDHeader = "X-Request-Id"

// Client is a thin typed wrapper over the REST endpoints.
type Client struct {
	conn *pkgHTTP.Connector
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		conn: pkgHTTP.NewConnector(&pkgHTTP.ConnectorConfig{
			BaseURL: strings.TrimRight(baseURL, "/"),
			Logger:  logger,
		}, pkgHTTP.WithRequestTimeout(timeout)),
	}
}

func (c *Client) Health(ctx context.Context) (*entity.HealthResponse, error) {
	id := uuid.NewString()
	var resp entity.HealthResponse
	if err := c.conn.DoRequest(ctx, http.MethodGet, "/", nil, &resp, pkgHTTP.WithHeader(RequestIDHeader, id)); err != nil {
		return nil, apiError(err, id)
	}
	return &resp, nil
}

// UploadResume sends the file at path as the "resume" form field.
func (c *Client) UploadResume(ctx context.Context, path, candidateID string) (*entity.UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open resume: %w", err)
	}
	defer f.Close()

	id := uuid.NewString()
	var resp entity.UploadResponse
	err = c.conn.DoMultipartRequest(ctx, http.MethodPost, "/api/upload", func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("resume", filepath.Base(path))
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f); err != nil {
			return err
		}
		if candidateID != "" {
			return w.WriteField("candidateId", candidateID)
		}
		return nil
	}, &resp, pkgHTTP.WithHeader(RequestIDHeader, id))
	if err != nil {
		return nil, apiError(err, id)
	}

	return &resp, nil
}

func (c *Client) Chat(ctx context.Context, message, candidateID string) (*entity.ChatResult, error) {
	req := &entity.ChatRequest{
		Message:     message,
		CandidateID: candidateID,
	}

	id := uuid.NewString()
	var resp entity.ChatResult
	if err := c.conn.DoRequest(ctx, http.MethodPost, "/api/chat", req, &resp, pkgHTTP.WithHeader(RequestIDHeader, id)); err != nil {
		return nil, apiError(err, id)
	}
	return &resp, nil
}

// apiError surfaces the server's {"error": ...} message when there is one,
// tagged with the request id to look up in the server logs.
func apiError(err error, requestID string) error {
	var httpErr *pkgHTTP.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	var body struct {
		Error string `json:"error"`
	}
	if jsonErr := json.Unmarshal([]byte(httpErr.Message), &body); jsonErr == nil && body.Error != "" {
		return fmt.Errorf("server returned %d: %s (request id %s)", httpErr.StatusCode, body.Error, requestID)
	}
	return err
}
