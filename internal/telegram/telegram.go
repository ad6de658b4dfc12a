package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/bot"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/handlers"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/state"
	pkgHTTP "github.com/ANKITsingh-git2/hireflow-ai-backend/pkg/http"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot authorizes against the Bot API and wires the resume interview handlers.
func NewBot(
	cfg *config.TelegramConfig,
	resumeUC handlers.ResumeUsecase,
	interviewUC handlers.InterviewUsecase,
	validator handlers.ResumeValidator,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	// no request logging here: file URLs carry the bot token
	downloader := handlers.NewDownloader(api, pkgHTTP.NewClient(), cfg.MaxFileSize)
	candidates := state.NewCandidateStore(cfg.CandidateTTL)
	handler := handlers.NewHandler(api, resumeUC, interviewUC, validator, candidates, downloader, logger)

	logger.Info("telegram bot initialized successfully")

	return bot.New(cfg, api, handler, logger), nil
}
