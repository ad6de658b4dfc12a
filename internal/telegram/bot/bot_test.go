package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/handlers"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/render"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []string
	updates chan tgbotapi.Update
	stopped bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFileDirectURL(string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeAPI) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeHandler struct {
	mu    sync.Mutex
	calls []string
	err   error
	panic bool
}

func (h *fakeHandler) record(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, name)
	if h.panic {
		panic("boom")
	}
	return h.err
}

func (h *fakeHandler) Start(context.Context, *handlers.Message) error { return h.record("start") }

func (h *fakeHandler) Help(context.Context, *handlers.Message) error { return h.record("help") }

func (h *fakeHandler) Cancel(context.Context, *handlers.Message) error { return h.record("cancel") }

func (h *fakeHandler) Handle(_ context.Context, msg *handlers.Message) error {
	return h.record("message:" + msg.Text)
}

func (h *fakeHandler) recorded() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func newTestBot(h *fakeHandler) (*Bot, *fakeAPI) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 8)}
	cfg := &config.TelegramConfig{
		UpdateTimeout:      1,
		RateLimitPerMinute: 600,
		RateLimitBurst:     100,
		ShutdownTimeout:    2,
	}
	return New(cfg, api, h, zap.NewNop()), api
}

func commandUpdate(command string) tgbotapi.Update {
	text := "/" + command
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: 1},
			Chat:     &tgbotapi.Chat{ID: 2},
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		},
	}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 2,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 1},
			Chat: &tgbotapi.Chat{ID: 2},
			Text: text,
		},
	}
}

func TestHandleUpdate_Routing(t *testing.T) {
	h := &fakeHandler{}
	b, api := newTestBot(h)
	defer b.rateLimitMW.Close()
	ctx := context.Background()

	b.handleUpdate(ctx, commandUpdate("start"))
	b.handleUpdate(ctx, commandUpdate("help"))
	b.handleUpdate(ctx, commandUpdate("cancel"))
	b.handleUpdate(ctx, textUpdate("hello"))
	b.handleUpdate(ctx, commandUpdate("unknown"))
	b.handleUpdate(ctx, tgbotapi.Update{UpdateID: 3})

	assert.Equal(t, []string{"start", "help", "cancel", "message:hello"}, h.recorded())
	assert.Equal(t, []string{render.ErrUnknownCommand}, api.texts())
}

func TestHandleUpdate_HandlerErrorSendsGeneric(t *testing.T) {
	h := &fakeHandler{err: errors.New("download failed")}
	b, api := newTestBot(h)
	defer b.rateLimitMW.Close()

	b.handleUpdate(context.Background(), textUpdate("hi"))

	assert.Equal(t, []string{render.ErrGeneric}, api.texts())
}

func TestHandleUpdateWithMiddleware_RecoversPanic(t *testing.T) {
	h := &fakeHandler{panic: true}
	b, api := newTestBot(h)
	defer b.rateLimitMW.Close()

	assert.NotPanics(t, func() {
		b.handleUpdateWithMiddleware(context.Background(), textUpdate("hi"))
	})
	assert.Equal(t, []string{render.ErrGeneric}, api.texts())
}

func TestStartStop(t *testing.T) {
	h := &fakeHandler{}
	b, api := newTestBot(h)

	require.NoError(t, b.Start(context.Background()))

	api.updates <- textUpdate("first")
	assert.Eventually(t, func() bool {
		return len(h.recorded()) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, b.Stop())
	require.NoError(t, b.Stop())

	api.mu.Lock()
	assert.True(t, api.stopped)
	api.mu.Unlock()
}
