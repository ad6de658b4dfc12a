package builder

import (
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/logger"
)

func setupLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
