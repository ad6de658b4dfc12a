package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	pkgRetry "github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	VectorStorePinecone = "pinecone"
	VectorStorePgvector = "pgvector"
	VectorStoreSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	Port string `env:"PORT" envDefault:"5000"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Replace AI providers with local mocks
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Vector store backend: pinecone, pgvector or sqlite
	VectorStoreBackend string `env:"VECTOR_STORE_BACKEND" envDefault:"pinecone"`

	// External service configurations
	LLMConnectorCfg       LLMConnectorConfig       `envPrefix:"GROQ_"`
	EmbeddingConnectorCfg EmbeddingConnectorConfig `envPrefix:"GOOGLE_"`
	PineconeConnectorCfg  PineconeConnectorConfig  `envPrefix:"PINECONE_"`

	// Database configuration (pgvector backend)
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBNamespace         string        `env:"DB_NAMESPACE"`

	// SQLite configuration (sqlite backend)
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/fragments.db"`

	MemoryCfg     MemoryConfig     `envPrefix:"MEMORY_"`
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Interviewer prompt template (YAML); built-in defaults when missing
	PromptFile string `env:"INTERVIEWER_PROMPT_FILE" envDefault:"internal/config/interviewer_prompt.yaml"`
	Prompt     PromptTemplate

	// Directory watched for dropped resumes; disabled when empty
	ResumeInboxDir      string        `env:"RESUME_INBOX_DIR"`
	ResumeInboxDebounce time.Duration `env:"RESUME_INBOX_DEBOUNCE" envDefault:"500ms"`

	// License for DOCX extraction
	UnidocLicenseKey string `env:"UNIDOC_LICENSE_KEY"`

	// Telegram bot configuration (telegram-bot only)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	MaxFileSize        int64         `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	CandidateTTL       time.Duration `env:"CANDIDATE_TTL" envDefault:"24h"`
	ShutdownTimeout    int           `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	APIKey      string  `env:"API_KEY"`
	Model       string  `env:"MODEL" envDefault:"llama-3.3-70b-versatile"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.6"`
}

type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	APIKey    string `env:"API_KEY"`
	ProjectID string `env:"PROJECT_ID"`
	Model     string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
}

type PineconeConnectorConfig struct {
	HTTPClientConfig
	APIKey     string               `env:"API_KEY"`
	Index      string               `env:"INDEX"`
	IndexHost  string               `env:"INDEX_HOST"`
	Namespace  string               `env:"NAMESPACE"`
	APIVersion string               `env:"API_VERSION" envDefault:"2024-07"`
	HostTTL    time.Duration        `env:"HOST_TTL" envDefault:"1h"`
	Retry      pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Url                   string        `env:"BASE_URL"`
}

// MemoryConfig controls how resume text is split, embedded and retrieved.
type MemoryConfig struct {
	TopK           int `env:"TOP_K" envDefault:"2"`
	ChunkSize      int `env:"CHUNK_SIZE" envDefault:"0"` // characters, 0 keeps one chunk per ingestion
	ChunkOverlap   int `env:"CHUNK_OVERLAP" envDefault:"0"`
	MaxConcurrency int `env:"MAX_CONCURRENCY" envDefault:"5"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`   // 10 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"12582912"` // 12 MiB
}

const (
	defaultGroqURL     = "https://api.groq.com/openai/v1"
	defaultGoogleURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultPineconeURL = "https://api.pinecone.io"
)

// LoadConfig parses the -env flag, loads the matching .env file and the environment.
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load reads configuration for the given environment name.
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	prompt, err := LoadPromptTemplate(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("load interviewer prompt: %w", err)
	}
	cfg.Prompt = prompt

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LLMConnectorCfg.Url == "" {
		cfg.LLMConnectorCfg.Url = defaultGroqURL
	}
	if cfg.EmbeddingConnectorCfg.Url == "" {
		cfg.EmbeddingConnectorCfg.Url = defaultGoogleURL
	}
	if cfg.PineconeConnectorCfg.Url == "" {
		cfg.PineconeConnectorCfg.Url = defaultPineconeURL
	}
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.VectorStoreBackend {
	case VectorStorePinecone, VectorStoreSQLite:
	case VectorStorePgvector:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required for the pgvector backend")
		}
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}
		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
		}
	default:
		errors = append(errors, fmt.Sprintf("VECTOR_STORE_BACKEND must be one of pinecone, pgvector, sqlite, got %q", cfg.VectorStoreBackend))
	}

	if cfg.MemoryCfg.TopK < 1 {
		errors = append(errors, fmt.Sprintf("MEMORY_TOP_K must be positive, got %d", cfg.MemoryCfg.TopK))
	}

	if cfg.MemoryCfg.MaxConcurrency < 1 {
		errors = append(errors, fmt.Sprintf("MEMORY_MAX_CONCURRENCY must be positive, got %d", cfg.MemoryCfg.MaxConcurrency))
	}

	if cfg.MemoryCfg.ChunkSize > 0 && (cfg.MemoryCfg.ChunkOverlap < 0 || cfg.MemoryCfg.ChunkOverlap >= cfg.MemoryCfg.ChunkSize) {
		errors = append(errors, fmt.Sprintf("MEMORY_CHUNK_OVERLAP must be between 0 and MEMORY_CHUNK_SIZE(%d), got %d", cfg.MemoryCfg.ChunkSize, cfg.MemoryCfg.ChunkOverlap))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateTelegram checks the settings only the bot needs.
func (cfg *Config) ValidateTelegram() error {
	t := cfg.TelegramCfg
	switch {
	case t.BotToken == "":
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	case t.RateLimitPerMinute < 1 || t.RateLimitPerMinute > 60:
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", t.RateLimitPerMinute)
	case t.RateLimitBurst < 1 || t.RateLimitBurst > 20:
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", t.RateLimitBurst)
	case t.ShutdownTimeout < 1 || t.ShutdownTimeout > 300:
		return fmt.Errorf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", t.ShutdownTimeout)
	}
	return nil
}

// ServerAddr is the listen address derived from PORT.
func (cfg *Config) ServerAddr() string {
	return ":" + cfg.Port
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
