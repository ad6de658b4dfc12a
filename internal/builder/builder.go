package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api"
	interviewapi "github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/interview"
	resumeapi "github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/resume"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/integration/embedding"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/integration/llm"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/extractor"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/prompt"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/validator"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/interview"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/memory"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/resume"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/watcher"
)

// core holds the use cases shared by the HTTP service and the Telegram bot.
type core struct {
	validator   *validator.Validator
	resumeUC    *resume.ResumeUsecase
	interviewUC *interview.InterviewUsecase
	closers     []func()
}

func (c *core) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func buildCore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*core, error) {
	index, closeIndex, err := setupVectorStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var embedder memory.Embedder
	var llmConnector interview.LLMConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		embedder = embedding.NewMockConnector(logger)
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		embedder = embedding.NewConnector(cfg.EmbeddingConnectorCfg, logger)
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	var (
		extractorOpts []extractor.Option
		validatorOpts []validator.Option
	)
	if cfg.UnidocLicenseKey != "" {
		if err := extractor.SetLicense(cfg.UnidocLicenseKey); err != nil {
			closeIndex()
			return nil, fmt.Errorf("set unidoc license: %w", err)
		}
		extractorOpts = append(extractorOpts, extractor.WithDOCX())
		validatorOpts = append(validatorOpts, validator.WithDOCX())
	} else {
		logger.Warn("UNIDOC_LICENSE_KEY not set, DOCX resumes will be rejected")
	}

	fileValidator := validator.NewValidator(cfg.FileUploadCfg, validatorOpts...)

	memoryUC := memory.NewUsecase(embedder, index, cfg.MemoryCfg, logger)
	resumeUC := resume.NewUsecase(extractor.New(extractorOpts...), memoryUC, logger)
	interviewUC := interview.NewUsecase(
		memoryUC,
		prompt.NewComposer(cfg.Prompt),
		llmConnector,
		cfg.MemoryCfg.TopK,
		logger,
	)
	logger.Info("Use cases initialized")

	return &core{
		validator:   fileValidator,
		resumeUC:    resumeUC,
		interviewUC: interviewUC,
		closers:     []func(){closeIndex},
	}, nil
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr()),
		zap.String("vector_store", cfg.VectorStoreBackend),
	)

	c, err := buildCore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	resumeHandler := resumeapi.NewHandler(c.resumeUC, c.interviewUC, cfg.FileUploadCfg, c.validator)
	interviewHandler := interviewapi.NewHandler(c.interviewUC, c.validator)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(resumeHandler, interviewHandler, logger)
	logger.Info("HTTP router configured")

	// WriteTimeout covers extraction plus two provider round trips
	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	app := &App{
		server:  server,
		closers: c.closers,
		logger:  logger,
	}

	if cfg.ResumeInboxDir != "" {
		app.inbox = watcher.NewInboxWatcher(cfg.ResumeInboxDir, cfg.ResumeInboxDebounce, c.resumeUC, c.validator, logger)
		logger.Info("Resume inbox enabled", zap.String("dir", cfg.ResumeInboxDir))
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return app, nil
}

// BuildTelegramBot creates and initializes the Telegram bot. The returned
// cleanup releases the vector store after the bot has stopped.
func BuildTelegramBot() (telegram.Bot, *zap.Logger, func(), error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateTelegram(); err != nil {
		return nil, nil, nil, err
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
		zap.String("vector_store", cfg.VectorStoreBackend),
	)

	c, err := buildCore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, c.resumeUC, c.interviewUC, c.validator, logger)
	if err != nil {
		c.close()
		return nil, nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, c.close, nil
}
