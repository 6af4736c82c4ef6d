package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/dessertcatalog/internal/flagx"
	"github.com/dmitrijs2005/dessertcatalog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so they may be written as "30s" or as nanoseconds.
type JsonConfig struct {
	BaseURL            string          `json:"base_url"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	DatabasePath       string          `json:"database_path"`
	LogFile            string          `json:"log_file"`
	LogLevel           string          `json:"log_level"`
	ExportDir          string          `json:"export_dir"`
	S3Bucket           string          `json:"s3_bucket"`
	S3Region           string          `json:"s3_region"`
	S3Endpoint         string          `json:"s3_endpoint"`
	S3AccessKey        string          `json:"s3_access_key"`
	S3SecretKey        string          `json:"s3_secret_key"`
	CategoriesCacheTTL *timex.Duration `json:"categories_cache_ttl"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Keys missing from the file leave cfg untouched.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CategoriesCacheTTL != nil {
		cfg.CategoriesCacheTTL = jc.CategoriesCacheTTL.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
