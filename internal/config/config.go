package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	CRMDatabase DatabaseConfig `mapstructure:"crm_database"`
	AI          AIConfig
	API         APIConfig
	Storage     StorageConfig
	Tracing     TracingConfig   `mapstructure:"tracing"`
	CORS        CORSConfig      `mapstructure:"cors"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flags, set from the command line rather than the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string `mapstructure:"sslmode"`
}

// AIConfig groups everything that talks to a model: the hosted
// OpenAI-compatible endpoint, the local Ollama server, and the default
// model for each stage of the pipeline.
type AIConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`            // default SQL synthesis model
	ClassifierModel string `mapstructure:"classifier_model"` // classification + interpretation
	EmbeddingModel  string `mapstructure:"embedding_model"`
	OllamaBaseURL   string `mapstructure:"ollama_base_url"`
	RetrievalK      int    `mapstructure:"retrieval_k"`
}

type APIConfig struct {
	Key string `mapstructure:"key"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("CRM_ASSIST")
	viper.AutomaticEnv()

	// Database (own persistence: chats, message log, embeddings)
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")
	viper.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// CRM database (read-only, ad-hoc queries)
	viper.BindEnv("crm_database.host", "CRM_DATABASE_HOST")
	viper.BindEnv("crm_database.port", "CRM_DATABASE_PORT")
	viper.BindEnv("crm_database.user", "CRM_DATABASE_USER")
	viper.BindEnv("crm_database.password", "CRM_DATABASE_PASSWORD")
	viper.BindEnv("crm_database.dbname", "CRM_DATABASE_NAME")
	viper.BindEnv("crm_database.sslmode", "CRM_DATABASE_SSLMODE")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")
	viper.BindEnv("ai.classifier_model", "AI_CLASSIFIER_MODEL")
	viper.BindEnv("ai.embedding_model", "AI_EMBEDDING_MODEL")
	viper.BindEnv("ai.ollama_base_url", "OLLAMA_BASE_URL")

	// Shared secret for the CRM-facing endpoints
	viper.BindEnv("api.key", "API_KEY")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.AI.RetrievalK <= 0 {
		cfg.AI.RetrievalK = 4
	}
	if cfg.AI.ClassifierModel == "" {
		cfg.AI.ClassifierModel = "llama3.1:8b"
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = "nomic-embed-text"
	}

	// The shared API key is mandatory in release mode.
	if cfg.Server.Mode == "release" && len(cfg.API.Key) < 16 {
		return nil, fmt.Errorf("API key is too short (%d chars), must be at least 16 characters in release mode", len(cfg.API.Key))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
