package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"SITEDECK_DATA_FILE", "SITEDECK_DB_PATH", "SITEDECK_LOG_FILE",
		"SITEDECK_LOG_LEVEL", "S3_BUCKET", "S3_REGION",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "construction_timeline.xlsx", cfg.DataFile)
	assert.Equal(t, "images.db", cfg.DatabasePath)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "sitedeck.log", cfg.Log.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SITEDECK_DATA_FILE", "site.xlsx")
	t.Setenv("SITEDECK_DB_PATH", "/tmp/site-images.db")
	t.Setenv("SITEDECK_LOG_LEVEL", "debug")
	t.Setenv("S3_BUCKET", "cmbp-site-photos")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "site.xlsx", cfg.DataFile)
	assert.Equal(t, "/tmp/site-images.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "cmbp-site-photos", cfg.S3.Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "AKIAEXAMPLE", cfg.S3.AccessKeyID)
	assert.Equal(t, "secret", cfg.S3.SecretAccessKey)
}

func TestEnvKeyIgnoresUnknown(t *testing.T) {
	assert.Equal(t, "", envKey("PATH"))
	assert.Equal(t, "", envKey("HOME"))
	assert.Equal(t, "s3.bucket", envKey("S3_BUCKET"))
}
