package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/render"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	Caption   string
	Document  *tgbotapi.Document
}

// NewMessage normalizes an incoming Telegram message.
func NewMessage(m *tgbotapi.Message) *Message {
	msg := &Message{
		MessageID: m.MessageID,
		Text:      m.Text,
		Caption:   m.Caption,
		Document:  m.Document,
	}
	if m.Chat != nil {
		msg.ChatID = m.Chat.ID
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	return msg
}

// Handler serves resume uploads and interview messages.
type Handler struct {
	api         API
	resumeUC    ResumeUsecase
	interviewUC InterviewUsecase
	validator   ResumeValidator
	candidates  CandidateStore
	downloader  *Downloader
	sender      *MessageSender
	logger      *zap.Logger
}

func NewHandler(
	api API,
	resumeUC ResumeUsecase,
	interviewUC InterviewUsecase,
	validator ResumeValidator,
	candidates CandidateStore,
	downloader *Downloader,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		api:         api,
		resumeUC:    resumeUC,
		interviewUC: interviewUC,
		validator:   validator,
		candidates:  candidates,
		downloader:  downloader,
		sender:      NewMessageSender(api, logger),
		logger:      logger,
	}
}

func (h *Handler) Start(ctx context.Context, msg *Message) error {
	return h.sender.Send(msg.ChatID, render.MsgWelcome, 0)
}

func (h *Handler) Help(ctx context.Context, msg *Message) error {
	return h.sender.Send(msg.ChatID, render.MsgHelp, 0)
}

// Cancel forgets the active candidate of the chat.
func (h *Handler) Cancel(ctx context.Context, msg *Message) error {
	if _, ok := h.candidates.Get(msg.ChatID); !ok {
		return h.sender.Send(msg.ChatID, render.MsgNoCandidate, 0)
	}
	h.candidates.Clear(msg.ChatID)
	return h.sender.Send(msg.ChatID, render.MsgCandidateCleared, 0)
}

// Handle routes a non-command message.
func (h *Handler) Handle(ctx context.Context, msg *Message) error {
	switch {
	case msg.Document != nil:
		return h.handleDocument(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		return h.handleText(ctx, msg)
	default:
		return h.sender.Send(msg.ChatID, render.ErrUnsupportedMessage, msg.MessageID)
	}
}

// handleDocument ingests a resume. The caption, if any, becomes the
// candidate id, otherwise the filename does.
func (h *Handler) handleDocument(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "telegram_resume_upload")

	filename := validator.SanitizeFilename(msg.Document.FileName)
	mediaType, err := h.validator.ValidateResumeFile(filename, int64(msg.Document.FileSize))
	if err != nil {
		ctxzap.Info(ctx, "resume rejected", zap.String("filename", filename), zap.Error(err))
		return h.sender.Send(msg.ChatID, render.ClassifyError(err), msg.MessageID)
	}

	typing := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	content, err := h.downloader.Download(ctx, msg.Document.FileID)
	if err != nil {
		if errors.Is(err, entity.ErrFileTooLarge) {
			return h.sender.Send(msg.ChatID, render.ErrFileTooLarge, msg.MessageID)
		}
		return fmt.Errorf("download resume: %w", err)
	}

	doc := entity.Document{
		Filename:  filename,
		MediaType: mediaType,
		Content:   content,
	}

	candidateID, err := h.resumeUC.Ingest(ctx, doc, msg.Caption)
	if err != nil {
		ctxzap.Error(ctx, "telegram resume ingestion failed", zap.Error(err))
		return h.sender.Send(msg.ChatID, render.ClassifyError(err), msg.MessageID)
	}

	h.candidates.Set(msg.ChatID, candidateID)

	return h.sender.Send(msg.ChatID, render.ResumeStored(candidateID), msg.MessageID)
}

// handleText answers as the interviewer, scoped to the active candidate when there is one.
func (h *Handler) handleText(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "telegram_chat")

	candidateID, _ := h.candidates.Get(msg.ChatID)

	typing := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	result := h.interviewUC.Chat(ctx, &entity.ChatRequest{
		Message:     msg.Text,
		CandidateID: candidateID,
	})

	ctxzap.Debug(ctx, "telegram chat reply",
		zap.String("candidate_id", candidateID),
		zap.Bool("context_used", result.ContextUsed),
	)

	return h.sender.Send(msg.ChatID, result.Reply, 0)
}

// Downloader fetches files from Telegram servers.
type Downloader struct {
	api     API
	client  *http.Client
	maxSize int64
}

func NewDownloader(api API, client *http.Client, maxSize int64) *Downloader {
	return &Downloader{
		api:     api,
		client:  client,
		maxSize: maxSize,
	}
}
