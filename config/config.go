package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     int    `env:"PORT" env-default:"7890"`
	AppEnv   string `env:"APP_ENV" env-default:"production"`
	LogLevel string `env:"LOG_LEVEL" env-default:""`
	DataDir  string `env:"DATA_DIR" env-default:"/data"`

	Database  Database
	Storage   Storage
	Events    Events
	Pipeline  Pipeline
	RateLimit RateLimit

	// Parsed from Pipeline by Load.
	Sizes     *domain.SizeSet
	Preferred domain.Format
	Fallback  domain.Format
}

type Database struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite"`
	URL    string `env:"DATABASE_URL" env-default:""`
}

type Storage struct {
	Backend       string        `env:"STORAGE_BACKEND" env-default:"local"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL" env-default:"http://localhost:7890"`
	SigningSecret string        `env:"SIGNING_SECRET" env-default:""`
	SignedURLTTL  time.Duration `env:"SIGNED_URL_TTL" env-default:"1h"`

	S3Endpoint       string `env:"S3_ENDPOINT" env-default:"localhost:9000"`
	S3AccessKey      string `env:"S3_ACCESS_KEY" env-default:""`
	S3SecretKey      string `env:"S3_SECRET_KEY" env-default:""`
	S3UseSSL         bool   `env:"S3_USE_SSL" env-default:"false"`
	S3Region         string `env:"S3_REGION" env-default:"us-east-1"`
	SourceBucket     string `env:"SOURCE_BUCKET" env-default:"files"`
	DerivativeBucket string `env:"DERIVATIVE_BUCKET" env-default:"thumbnails"`
}

type Events struct {
	Transport       string `env:"EVENT_TRANSPORT" env-default:"memory"`
	RedisURL        string `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	UploadedChannel string `env:"UPLOADED_CHANNEL" env-default:"source.uploaded"`
	DeletedChannel  string `env:"DELETED_CHANNEL" env-default:"source.deleted"`
	OutboundChannel string `env:"OUTBOUND_CHANNEL" env-default:"derivative.events"`
}

type Pipeline struct {
	WorkerPoolSize  int           `env:"WORKER_POOL_SIZE" env-default:"10"`
	QueueCapacity   int           `env:"QUEUE_CAPACITY" env-default:"100"`
	MaxAttempts     int           `env:"MAX_ATTEMPTS" env-default:"3"`
	RetryStaleAfter time.Duration `env:"RETRY_STALE_AFTER" env-default:"5m"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" env-default:"1m"`
	ShutdownGrace   time.Duration `env:"SHUTDOWN_GRACE" env-default:"60s"`
	PreferredFormat string        `env:"PREFERRED_FORMAT" env-default:"webp"`
	FallbackFormat  string        `env:"FALLBACK_FORMAT" env-default:"jpg"`
	Sizes           string        `env:"DERIVATIVE_SIZES" env-default:"SMALL:150x150,GRID:200x200,PREVIEW:400x400"`
}

// RateLimit throttles generation requests per owner. Requests <= 0 disables it.
type RateLimit struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"60"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	Block    time.Duration `env:"RATE_LIMIT_BLOCK" env-default:"1m"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	sizes, err := domain.ParseSizeSet(c.Pipeline.Sizes)
	if err != nil {
		return fmt.Errorf("invalid DERIVATIVE_SIZES: %w", err)
	}
	c.Sizes = sizes

	var ok bool
	if c.Preferred, ok = domain.ParseFormat(c.Pipeline.PreferredFormat); !ok {
		return fmt.Errorf("invalid PREFERRED_FORMAT %q", c.Pipeline.PreferredFormat)
	}
	if c.Fallback, ok = domain.ParseFormat(c.Pipeline.FallbackFormat); !ok {
		return fmt.Errorf("invalid FALLBACK_FORMAT %q", c.Pipeline.FallbackFormat)
	}

	p := c.Pipeline
	switch {
	case p.WorkerPoolSize < 1:
		return fmt.Errorf("WORKER_POOL_SIZE must be at least 1")
	case p.QueueCapacity < 0:
		return fmt.Errorf("QUEUE_CAPACITY must not be negative")
	case p.MaxAttempts < 1:
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1")
	case p.RetryStaleAfter <= 0:
		return fmt.Errorf("RETRY_STALE_AFTER must be positive")
	case p.SweepInterval <= 0:
		return fmt.Errorf("SWEEP_INTERVAL must be positive")
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case "local":
		if c.Storage.SigningSecret == "" {
			return fmt.Errorf("SIGNING_SECRET is required when STORAGE_BACKEND=local")
		}
	case "s3":
		if c.Storage.S3AccessKey == "" || c.Storage.S3SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.Storage.SignedURLTTL <= 0 {
		return fmt.Errorf("SIGNED_URL_TTL must be positive")
	}

	c.Events.Transport = strings.ToLower(c.Events.Transport)
	if c.Events.Transport != "memory" && c.Events.Transport != "redis" {
		return fmt.Errorf("unsupported EVENT_TRANSPORT %q", c.Events.Transport)
	}

	if c.RateLimit.Requests > 0 && (c.RateLimit.Window <= 0 || c.RateLimit.Block <= 0) {
		return fmt.Errorf("RATE_LIMIT_WINDOW and RATE_LIMIT_BLOCK must be positive")
	}
	return nil
}
