package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "STATIC_DIR", "MAX_FILE_SIZE", "EXTRACT_CONCURRENCY",
		"EXTRACT_QUEUE_SIZE", "EXTRACT_TIMEOUT", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
		"EXTRACTION_URL", "REQUEST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "./dist", cfg.Server.StaticDir)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, int64(2*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, 4, cfg.Extraction.Concurrency)
	assert.Equal(t, 32, cfg.Extraction.QueueSize)
	assert.Equal(t, 30*time.Second, cfg.Extraction.Timeout)
	assert.Equal(t, "", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "http://localhost:5000", cfg.Client.ExtractionURL)
	assert.Equal(t, 30*time.Second, cfg.Client.RequestTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("EXTRACT_CONCURRENCY", "2")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("EXTRACTION_URL", "http://extract.local:9000/")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, int64(1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, 1024+1024*1024, cfg.BodyLimit())
	assert.Equal(t, 2, cfg.Extraction.Concurrency)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "http://extract.local:9000", cfg.Client.ExtractionURL)
	assert.Equal(t, 5*time.Second, cfg.Client.RequestTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "lots")
	t.Setenv("EXTRACT_CONCURRENCY", "-3")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, int64(2*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, 4, cfg.Extraction.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Client.RequestTimeout)
}
