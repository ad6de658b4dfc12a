package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

// API is the subset of *tgbotapi.BotAPI used by the handlers.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type ResumeUsecase interface {
	Ingest(ctx context.Context, doc entity.Document, candidateID string) (string, error)
}

type InterviewUsecase interface {
	Chat(ctx context.Context, req *entity.ChatRequest) *entity.ChatResult
}

type ResumeValidator interface {
	ValidateResumeFile(filename string, size int64) (string, error)
}

// CandidateStore tracks the active candidate per chat.
type CandidateStore interface {
	Set(chatID int64, candidateID string)
	Get(chatID int64) (string, bool)
	Clear(chatID int64)
}
