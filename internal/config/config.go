// Package config loads sitedeck configuration from environment variables
// with sensible defaults.
//
// Environment variables:
//   - SITEDECK_DATA_FILE: task spreadsheet path (default: construction_timeline.xlsx)
//   - SITEDECK_DB_PATH: image metadata database path (default: images.db)
//   - SITEDECK_LOG_FILE: log file path (default: sitedeck.log)
//   - SITEDECK_LOG_LEVEL: zap level, "off" disables (default: info)
//   - S3_BUCKET: bucket for image uploads (required for uploads only)
//   - S3_REGION: bucket region (default: us-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: static credentials; when
//     unset the SDK's default credential chain is used
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/cmbp/sitedeck/internal/logging"
)

// Config holds the complete sitedeck configuration.
type Config struct {
	DataFile     string         `koanf:"data_file"`
	DatabasePath string         `koanf:"database_path"`
	S3           S3Config       `koanf:"s3"`
	Log          logging.Config `koanf:"log"`
}

// S3Config holds object storage settings for image uploads.
type S3Config struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile:     "construction_timeline.xlsx",
		DatabasePath: "images.db",
		S3: S3Config{
			Region: "us-east-1",
		},
		Log: logging.Config{
			Path:  "sitedeck.log",
			Level: "info",
		},
	}
}

// envKey maps a recognized environment variable to its config path. Unknown
// variables map to "" and are ignored by the provider.
func envKey(name string) string {
	switch name {
	case "SITEDECK_DATA_FILE":
		return "data_file"
	case "SITEDECK_DB_PATH":
		return "database_path"
	case "SITEDECK_LOG_FILE":
		return "log.path"
	case "SITEDECK_LOG_LEVEL":
		return "log.level"
	case "S3_BUCKET":
		return "s3.bucket"
	case "S3_REGION":
		return "s3.region"
	case "AWS_ACCESS_KEY_ID":
		return "s3.access_key_id"
	case "AWS_SECRET_ACCESS_KEY":
		return "s3.secret_access_key"
	}
	return ""
}

// Load builds the configuration from defaults overridden by environment
// variables. Variables that are unset or empty leave the default in place.
func Load() (*Config, error) {
	cfg := Default()

	k := koanf.New(".")
	provider := env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return envKey(name), value
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}
