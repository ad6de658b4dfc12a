package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	interviewapi "github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/interview"
	resumeapi "github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/resume"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/integration/embedding"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/extractor"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/prompt"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/repository"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/interview"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/memory"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/resume"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLLM struct {
	err error
}

func (s *stubLLM) Complete(ctx context.Context, p string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "Which part of that system was hardest to scale?", nil
}

func newTestRouter(t *testing.T, llm interview.LLMConnector) http.Handler {
	t.Helper()

	db, err := repository.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uploadCfg := config.FileUploadConfig{MaxFileSize: 1 << 20, MaxUploadSize: 2 << 20}
	v := validator.NewValidator(uploadCfg)
	logger := zap.NewNop()

	mem := memory.NewUsecase(
		embedding.NewMockConnector(logger),
		repository.NewFragmentSQLiteRepository(db, ""),
		config.MemoryConfig{TopK: 2, MaxConcurrency: 5},
		logger,
	)
	interviewUC := interview.NewUsecase(mem, prompt.NewComposer(config.DefaultPromptTemplate()), llm, 2, logger)
	resumeUC := resume.NewUsecase(extractor.New(), mem, logger)

	return SetupRouter(
		resumeapi.NewHandler(resumeUC, interviewUC, uploadCfg, v),
		interviewapi.NewHandler(interviewUC, v),
		logger,
	)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func multipartUpload(t *testing.T, filename string, content []byte, candidateID string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if filename != "" {
		part, err := w.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if candidateID != "" {
		require.NoError(t, w.WriteField("candidateId", candidateID))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func resumePDF(t *testing.T) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, "Jane Doe. Seven years building distributed systems in Go.")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	rec, body := doJSON(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Active", body["status"])
	assert.Equal(t, "HireFlow AI Backend is running", body["message"])

	ts, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
	assert.True(t, strings.HasSuffix(body["timestamp"].(string), "Z"))

	rec, body = doJSON(t, h, http.MethodGet, "/api/test", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "if u see this the api is working", body["message"])

	rec, body = doJSON(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestUpload_NoFile(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	for name, req := range map[string]*http.Request{
		"multipart without file": multipartUpload(t, "", nil, "c1"),
		"empty body":             httptest.NewRequest(http.MethodPost, "/api/upload", nil),
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"No file uploaded"}`, rec.Body.String())
		})
	}
}

func TestUpload_PDF(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartUpload(t, "jane_doe.pdf", resumePDF(t), ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp entity.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "jane_doe.pdf", resp.ID)

	_, body := doJSON(t, h, http.MethodPost, "/api/test-memory-query", `{"question":"distributed systems","candidateId":"jane_doe.pdf"}`)
	assert.Contains(t, body["contextFound"], "distributed systems")
}

func TestUpload_ExplicitCandidateID(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartUpload(t, "cv.pdf", resumePDF(t), "cand-42"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"id":"cand-42"`)
}

func TestUpload_Rejections(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	tests := []struct {
		name     string
		filename string
		content  []byte
		status   int
	}{
		{name: "unsupported extension", filename: "cv.txt", content: []byte("plain text resume"), status: http.StatusBadRequest},
		{name: "docx without license", filename: "cv.docx", content: []byte("PK docx bytes"), status: http.StatusBadRequest},
		{name: "malformed pdf", filename: "cv.pdf", content: []byte("not a pdf at all"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, multipartUpload(t, tt.filename, tt.content, ""))
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestChat_MessageRequired(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	for _, body := range []string{`{}`, ``, `{"message":"   "}`} {
		rec, out := doJSON(t, h, http.MethodPost, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "message is required", out["error"])
	}

	rec, out := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", out["error"])
}

func TestChat_EmptyIndex(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	rec, out := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"Hello, I am ready"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["contextUsed"])
	assert.Equal(t, "Which part of that system was hardest to scale?", out["reply"])
}

func TestChat_UsesStoredContext(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	sentence := "I have 5 years of experience with distributed systems and Go"
	rec, out := doJSON(t, h, http.MethodPost, "/api/test-memory-add", `{"text":"`+sentence+`","candidateId":"c1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])

	rec, out = doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"Tell me about your backend experience"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["contextUsed"])

	_, out = doJSON(t, h, http.MethodPost, "/api/test-memory-query", `{"question":"Tell me about your backend experience"}`)
	assert.Contains(t, out["contextFound"], sentence)
}

func TestChat_GenerationTimeoutReturnsFallback(t *testing.T) {
	h := newTestRouter(t, &stubLLM{err: errors.New("context deadline exceeded")})

	rec, out := doJSON(t, h, http.MethodPost, "/api/chat", `{"message":"Hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.FallbackReply, out["reply"])
	assert.Equal(t, false, out["contextUsed"])
}

func TestMemoryAdd_Validation(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	rec, out := doJSON(t, h, http.MethodPost, "/api/test-memory-add", `{"candidateId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text is required", out["error"])

	rec, out = doJSON(t, h, http.MethodPost, "/api/test-memory-add", `{"text":"tiny","candidateId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, out["error"], "too short")
}

func TestMemoryQuery_EmptyIndex(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	rec, out := doJSON(t, h, http.MethodPost, "/api/test-memory-query", `{"question":"anything"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", out["contextFound"])

	rec, out = doJSON(t, h, http.MethodPost, "/api/test-memory-query", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "question is required", out["error"])
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDocs(t *testing.T) {
	h := newTestRouter(t, &stubLLM{})

	req := httptest.NewRequest(http.MethodGet, "/docs/swagger.yaml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/chat")
}
