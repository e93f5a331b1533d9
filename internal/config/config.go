package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the whole application configuration, populated from the
// environment (and an optional .env file).
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	Cache     CacheConfig
	AI        AIConfig
	Worker    WorkerConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"bookstore-catalog"`
	Environment string `env:"APP_ENV" envDefault:"development"` // development, staging, production
	Port        string `env:"APP_PORT" envDefault:"8080"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	// BaseURL is used to build Location headers and as the default load test target.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	// CORSOrigins lists allowed browser origins; "*" allows any.
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type DatabaseConfig struct {
	Driver   string `env:"STORE_DRIVER" envDefault:"postgres"` // postgres, sqlite
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_NAME" envDefault:"bookstore"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns int    `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns int    `env:"DB_MIN_CONNS" envDefault:"5"`

	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"5m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"1m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MaxRetries        int           `env:"DB_MAX_RETRIES" envDefault:"5"`
	RetryDelay        time.Duration `env:"DB_RETRY_DELAY" envDefault:"1s"`
	ConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"bookstore.db"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type CacheConfig struct {
	Driver    string        `env:"CACHE_DRIVER" envDefault:"redis"` // redis, memory, none
	Capacity  int           `env:"CACHE_CAPACITY" envDefault:"10000"`
	Shards    int           `env:"CACHE_SHARDS" envDefault:"16"`
	BookTTL   time.Duration `env:"BOOK_CACHE_TTL" envDefault:"10m"`
	AuthorTTL time.Duration `env:"AUTHOR_CACHE_TTL" envDefault:"15m"`
}

type AIConfig struct {
	DefaultProvider string        `env:"AI_DEFAULT_PROVIDER" envDefault:"claude"`
	MaxTokens       int           `env:"AI_MAX_TOKENS" envDefault:"500"`
	Temperature     float64       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	Timeout         time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string        `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-sonnet-20241022"`
	AnthropicURL    string        `env:"ANTHROPIC_URL" envDefault:"https://api.anthropic.com"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIModel     string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIURL       string        `env:"OPENAI_URL" envDefault:"https://api.openai.com"`
	OllamaURL       string        `env:"OLLAMA_URL"`
	OllamaModel     string        `env:"OLLAMA_MODEL" envDefault:"llama3.1"`
}

type WorkerConfig struct {
	Concurrency int    `env:"WORKER_CONCURRENCY" envDefault:"10"`
	HealthPort  string `env:"WORKER_HEALTH_PORT" envDefault:"9999"`
	// SeedSchedule is a cron spec for periodic random seeding; empty disables it.
	SeedSchedule string `env:"SEED_SCHEDULE"`
	SeedBooks    int    `env:"SEED_SCHEDULE_BOOKS" envDefault:"20"`
	SeedAuthors  int    `env:"SEED_SCHEDULE_AUTHORS" envDefault:"5"`
	// MaxLoadTests bounds concurrently running load test jobs in the API process.
	MaxLoadTests int `env:"MAX_LOAD_TESTS" envDefault:"2"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads .env (when present) and parses the environment into a Config.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := ParseEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv parses the process environment without touching .env files.
func ParseEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks driver names and the settings production cannot run without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Database.Driver)
	}

	switch c.Cache.Driver {
	case "redis", "memory", "none":
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER %q", c.Cache.Driver)
	}

	if c.Cache.BookTTL <= 0 || c.Cache.AuthorTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}

	if c.IsProduction() {
		if c.Database.Driver == "postgres" && c.Database.Password == "" {
			return errors.New("DB_PASSWORD is required in production")
		}
		if c.Cache.Driver == "none" {
			return errors.New("CACHE_DRIVER=none is not allowed in production")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
