package builder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/config"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/integration/pinecone"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/repository"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/usecase/memory"
)

// setupVectorStore selects the fragment index named by VECTOR_STORE_BACKEND.
// The returned closer releases its connections.
func setupVectorStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (memory.FragmentIndex, func(), error) {
	logger.Info("Setting up vector store", zap.String("backend", cfg.VectorStoreBackend))

	switch cfg.VectorStoreBackend {
	case config.VectorStorePinecone:
		if cfg.PineconeConnectorCfg.APIKey == "" {
			logger.Warn("PINECONE_API_KEY is not set, memory operations will fail until it is configured")
		}
		return pinecone.NewConnector(cfg.PineconeConnectorCfg, logger), func() {}, nil

	case config.VectorStorePgvector:
		db, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("setup database: %w", err)
		}
		closer := func() {
			logger.Info("Closing database connections")
			db.Close()
		}
		return repository.NewFragmentPostgresRepository(db, cfg.DBNamespace), closer, nil

	case config.VectorStoreSQLite:
		db, err := setupSQLite(ctx, cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("setup sqlite: %w", err)
		}
		closer := func() {
			logger.Info("Closing sqlite fragment store")
			if err := db.Close(); err != nil {
				logger.Warn("sqlite close failed", zap.Error(err))
			}
		}
		return repository.NewFragmentSQLiteRepository(db, cfg.DBNamespace), closer, nil
	}

	return nil, nil, fmt.Errorf("unknown vector store backend %q", cfg.VectorStoreBackend)
}
