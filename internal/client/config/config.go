package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the catalog CLI.
type Config struct {
	BaseURL            string        `env:"CATALOG_BASE_URL" validate:"required,url"`
	RequestTimeout     time.Duration `env:"CATALOG_REQUEST_TIMEOUT" validate:"gt=0"`
	DatabasePath       string        `env:"CATALOG_DB" validate:"required"`
	LogFile            string        `env:"CATALOG_LOG_FILE"`
	LogLevel           string        `env:"CATALOG_LOG_LEVEL" validate:"oneof=debug info warn error"`
	ExportDir          string        `env:"CATALOG_EXPORT_DIR"`
	S3Bucket           string        `env:"CATALOG_S3_BUCKET"`
	S3Region           string        `env:"CATALOG_S3_REGION"`
	S3Endpoint         string        `env:"CATALOG_S3_ENDPOINT" validate:"omitempty,url"`
	S3AccessKey        string        `env:"CATALOG_S3_ACCESS_KEY"`
	S3SecretKey        string        `env:"CATALOG_S3_SECRET_KEY"`
	CategoriesCacheTTL time.Duration `env:"CATALOG_CATEGORIES_TTL" validate:"gte=0"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "catalog.db"
	c.LogFile = "catalog-cli.log"
	c.LogLevel = "info"
	c.ExportDir = "."
	c.CategoriesCacheTTL = 5 * time.Minute
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named by -c/-config
// in args, then CATALOG_* environment variables (a .env file in the working
// directory is read first), then flags in args. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
