// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// Optional bearer-token gate on the upload endpoint. The session system
	// that issues tokens lives outside this service; retrieval is always public.
	AuthRequired bool   `env:"AUTH_REQUIRED" envDefault:"false"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"change_me_in_production"`

	// Storage backend selection: "disk" (local directory) or "s3"
	// (MinIO or any S3-compatible provider).
	StorageDriver  string `env:"STORAGE_DRIVER" envDefault:"disk"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"./data/uploads"`
	PublicBasePath string `env:"PUBLIC_BASE_PATH" envDefault:"/uploads"`

	StorageEndpoint  string `env:"STORAGE_ENDPOINT" envDefault:"localhost:9000"`
	StorageAccessKey string `env:"STORAGE_ACCESS_KEY" envDefault:"minioadmin"`
	StorageSecretKey string `env:"STORAGE_SECRET_KEY" envDefault:"minioadmin"`
	StorageBucket    string `env:"STORAGE_BUCKET" envDefault:"uploads"`
	StorageUseSSL    bool   `env:"STORAGE_USE_SSL" envDefault:"false"`

	// Upload validation rules.
	AllowedTypes []string `env:"ALLOWED_TYPES" envDefault:"image/jpeg,image/png,image/webp"`
	MaxFileSize  int64    `env:"MAX_FILE_SIZE" envDefault:"5242880"`
	MaxFiles     int      `env:"MAX_FILES" envDefault:"10"`

	// Transport-level bound on the whole multipart body: room for MaxFiles
	// files of MaxFileSize each plus form overhead.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"62914560"`
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
