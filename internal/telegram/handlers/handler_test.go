package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/render"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/state"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []tgbotapi.MessageConfig
	actions int
	fileURL string
	fileErr error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	if f.fileErr != nil {
		return "", f.fileErr
	}
	return f.fileURL + "/" + fileID, nil
}

func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1].Text
}

type fakeResume struct {
	doc         entity.Document
	candidateID string
	err         error
}

func (f *fakeResume) Ingest(_ context.Context, doc entity.Document, candidateID string) (string, error) {
	f.doc = doc
	f.candidateID = candidateID
	if f.err != nil {
		return "", f.err
	}
	if candidateID != "" {
		return candidateID, nil
	}
	return doc.Filename, nil
}

type fakeInterview struct {
	req *entity.ChatRequest
}

func (f *fakeInterview) Chat(_ context.Context, req *entity.ChatRequest) *entity.ChatResult {
	f.req = req
	return &entity.ChatResult{Reply: "Tell me about Go.", ContextUsed: req.CandidateID != ""}
}

type fixture struct {
	api        *fakeAPI
	resume     *fakeResume
	interview  *fakeInterview
	candidates *state.CandidateStore
	handler    *Handler
}

func newFixture(t *testing.T, fileBody string) *fixture {
	t.Helper()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fileBody)
	}))
	t.Cleanup(srv.Close)

	api := &fakeAPI{fileURL: srv.URL}
	f := &fixture{
		api:        api,
		resume:     &fakeResume{},
		interview:  &fakeInterview{},
		candidates: state.NewCandidateStore(time.Hour),
	}

	v := validator.NewValidator(config.FileUploadConfig{MaxFileSize: 1024}, validator.WithDOCX())
	f.handler = NewHandler(api, f.resume, f.interview, v, f.candidates,
		NewDownloader(api, srv.Client(), 1024), zap.NewNop())
	return f
}

func docMessage(name, caption string, size int) *Message {
	return &Message{
		ChatID:    100,
		UserID:    1,
		MessageID: 7,
		Caption:   caption,
		Document: &tgbotapi.Document{
			FileID:   "file-1",
			FileName: name,
			FileSize: size,
		},
	}
}

func TestHandleDocument_StoresAndActivatesCandidate(t *testing.T) {
	f := newFixture(t, "%PDF-fake")

	err := f.handler.Handle(context.Background(), docMessage("jane.pdf", "", 9))
	require.NoError(t, err)

	assert.Equal(t, "jane.pdf", f.resume.doc.Filename)
	assert.Equal(t, entity.MediaTypePDF, f.resume.doc.MediaType)
	assert.Equal(t, []byte("%PDF-fake"), f.resume.doc.Content)

	id, ok := f.candidates.Get(100)
	require.True(t, ok)
	assert.Equal(t, "jane.pdf", id)
	assert.Equal(t, render.ResumeStored("jane.pdf"), f.api.lastText(t))
}

func TestHandleDocument_CaptionIsCandidateID(t *testing.T) {
	f := newFixture(t, "docx-bytes")

	err := f.handler.Handle(context.Background(), docMessage("cv.docx", "jane-doe", 10))
	require.NoError(t, err)

	assert.Equal(t, "jane-doe", f.resume.candidateID)
	assert.Equal(t, entity.MediaTypeDOCX, f.resume.doc.MediaType)
	id, _ := f.candidates.Get(100)
	assert.Equal(t, "jane-doe", id)
}

func TestHandleDocument_Rejections(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want string
	}{
		{"unsupported extension", docMessage("notes.txt", "", 10), render.ErrUnsupportedFile},
		{"declared too large", docMessage("big.pdf", "", 4096), render.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "x")

			require.NoError(t, f.handler.Handle(context.Background(), tt.msg))

			assert.Equal(t, tt.want, f.api.lastText(t))
			assert.Empty(t, f.resume.doc.Filename)
			_, ok := f.candidates.Get(100)
			assert.False(t, ok)
		})
	}
}

func TestHandleDocument_DOCXRejectedWhenDisabled(t *testing.T) {
	f := newFixture(t, "docx-bytes")
	v := validator.NewValidator(config.FileUploadConfig{MaxFileSize: 1024})
	f.handler = NewHandler(f.api, f.resume, f.interview, v, f.candidates, f.handler.downloader, zap.NewNop())

	require.NoError(t, f.handler.Handle(context.Background(), docMessage("cv.docx", "", 10)))

	assert.Equal(t, render.ErrUnsupportedFile, f.api.lastText(t))
	assert.Empty(t, f.resume.doc.Filename)
}

func TestHandleDocument_IngestFailure(t *testing.T) {
	f := newFixture(t, "garbage")
	f.resume.err = fmt.Errorf("extract resume: %w: bad xref", entity.ErrDocumentParse)

	require.NoError(t, f.handler.Handle(context.Background(), docMessage("jane.pdf", "", 7)))

	assert.Equal(t, render.ErrParse, f.api.lastText(t))
	_, ok := f.candidates.Get(100)
	assert.False(t, ok)
}

func TestHandleDocument_DownloadFailure(t *testing.T) {
	f := newFixture(t, "x")
	f.api.fileErr = errors.New("telegram down")

	err := f.handler.Handle(context.Background(), docMessage("jane.pdf", "", 1))
	assert.ErrorContains(t, err, "download resume")
}

func TestHandleText_ScopedToActiveCandidate(t *testing.T) {
	f := newFixture(t, "")
	f.candidates.Set(100, "jane.pdf")

	msg := &Message{ChatID: 100, UserID: 1, MessageID: 8, Text: "Hi, I am Jane"}
	require.NoError(t, f.handler.Handle(context.Background(), msg))

	require.NotNil(t, f.interview.req)
	assert.Equal(t, "Hi, I am Jane", f.interview.req.Message)
	assert.Equal(t, "jane.pdf", f.interview.req.CandidateID)
	assert.Equal(t, "Tell me about Go.", f.api.lastText(t))
	f.api.mu.Lock()
	assert.GreaterOrEqual(t, f.api.actions, 1)
	f.api.mu.Unlock()
}

func TestHandleText_WithoutCandidate(t *testing.T) {
	f := newFixture(t, "")

	msg := &Message{ChatID: 100, Text: "hello"}
	require.NoError(t, f.handler.Handle(context.Background(), msg))

	assert.Empty(t, f.interview.req.CandidateID)
}

func TestHandle_UnsupportedMessage(t *testing.T) {
	f := newFixture(t, "")

	require.NoError(t, f.handler.Handle(context.Background(), &Message{ChatID: 100}))
	assert.Equal(t, render.ErrUnsupportedMessage, f.api.lastText(t))
	assert.Nil(t, f.interview.req)
}

func TestCommands(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	msg := &Message{ChatID: 100}

	require.NoError(t, f.handler.Start(ctx, msg))
	assert.Equal(t, render.MsgWelcome, f.api.lastText(t))

	require.NoError(t, f.handler.Help(ctx, msg))
	assert.Equal(t, render.MsgHelp, f.api.lastText(t))

	require.NoError(t, f.handler.Cancel(ctx, msg))
	assert.Equal(t, render.MsgNoCandidate, f.api.lastText(t))

	f.candidates.Set(100, "jane.pdf")
	require.NoError(t, f.handler.Cancel(ctx, msg))
	assert.Equal(t, render.MsgCandidateCleared, f.api.lastText(t))
	_, ok := f.candidates.Get(100)
	assert.False(t, ok)
}

func TestDownloader(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "0123456789")
	}))
	defer srv.Close()

	api := &fakeAPI{fileURL: srv.URL}
	ctx := context.Background()

	data, err := NewDownloader(api, srv.Client(), 10).Download(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = NewDownloader(api, srv.Client(), 5).Download(ctx, "ok")
	assert.ErrorIs(t, err, entity.ErrFileTooLarge)

	_, err = NewDownloader(api, srv.Client(), 0).Download(ctx, "missing")
	assert.ErrorContains(t, err, "unexpected status code: 404")

	plain := &fakeAPI{fileURL: "http://example.com"}
	_, err = NewDownloader(plain, http.DefaultClient, 0).Download(ctx, "x")
	assert.ErrorContains(t, err, "insecure URL scheme")
}

func TestNewMessage(t *testing.T) {
	m := NewMessage(&tgbotapi.Message{
		MessageID: 3,
		From:      &tgbotapi.User{ID: 5},
		Chat:      &tgbotapi.Chat{ID: 6},
		Text:      "hi",
		Caption:   "cap",
	})

	assert.Equal(t, &Message{ChatID: 6, UserID: 5, MessageID: 3, Text: "hi", Caption: "cap"}, m)
}
