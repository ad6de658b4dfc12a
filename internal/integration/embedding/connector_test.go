package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	pkghttp "github.com/ANKITsingh-git2/hireflow-ai-backend/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(url string) *Connector {
	return NewConnector(config.EmbeddingConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: url},
		APIKey:           "g-key",
		ProjectID:        "proj-1",
		Model:            "text-embedding-004",
	}, zap.NewNop())
}

func TestConnector_EmbedTaskTypes(t *testing.T) {
	var got []entity.EmbedContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "proj-1", r.Header.Get("x-goog-user-project"))

		var req entity.EmbedContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = append(got, req)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)

	vec, err := c.EmbedDocument(context.Background(), "Go engineer")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)

	_, err = c.EmbedQuery(context.Background(), "backend experience")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "models/text-embedding-004", got[0].Model)
	assert.Equal(t, taskRetrievalDocument, got[0].TaskType)
	assert.Equal(t, "Go engineer", got[0].Content.Parts[0].Text)
	assert.Equal(t, taskRetrievalQuery, got[1].TaskType)
}

func TestConnector_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"API key not valid"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestConnector(srv.URL).EmbedDocument(context.Background(), "Go engineer")
	require.Error(t, err)

	var httpErr *pkghttp.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
}

func TestConnector_EmptyEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embedding":{"values":[]}}`))
	}))
	defer srv.Close()

	_, err := newTestConnector(srv.URL).EmbedQuery(context.Background(), "anything")
	assert.ErrorIs(t, err, errEmptyEmbedding)
}

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestHashVector(t *testing.T) {
	v := HashVector("Distributed systems in Go", MockDimension)
	require.Len(t, v, MockDimension)

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)

	assert.Equal(t, v, HashVector("distributed, SYSTEMS in go!", MockDimension))

	related := HashVector("Tell me about distributed systems", MockDimension)
	unrelated := HashVector("banana bread recipe", MockDimension)
	assert.Greater(t, cosine(v, related), cosine(v, unrelated))

	assert.Equal(t, make([]float32, 8), HashVector("  ...  ", 8))
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector(zap.NewNop())
	doc, err := m.EmbedDocument(context.Background(), "Kafka and Go")
	require.NoError(t, err)
	query, err := m.EmbedQuery(context.Background(), "Kafka and Go")
	require.NoError(t, err)
	assert.Equal(t, doc, query)
}
