package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Upload     UploadConfig
	Extraction ExtractionConfig
	Gemini     GeminiConfig
	Client     ClientConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	StaticDir string
}

type UploadConfig struct {
	MaxFileSize int64
}

type ExtractionConfig struct {
	Concurrency int
	QueueSize   int
	Timeout     time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type ClientConfig struct {
	ExtractionURL  string
	RequestTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "5000"),
			Env:       getEnv("ENV", "development"),
			StaticDir: getEnv("STATIC_DIR", "./dist"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 2*1024*1024),
		},
		Extraction: ExtractionConfig{
			Concurrency: getEnvAsInt("EXTRACT_CONCURRENCY", 4),
			QueueSize:   getEnvAsInt("EXTRACT_QUEUE_SIZE", 32),
			Timeout:     getEnvAsDuration("EXTRACT_TIMEOUT", "30s"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
		},
		Client: ClientConfig{
			ExtractionURL:  strings.TrimRight(getEnv("EXTRACTION_URL", "http://localhost:5000"), "/"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", "30s"),
		},
	}
}

// IsDevelopment reports whether verbose request logging should be enabled.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// BodyLimit is the largest request body Fiber accepts. It leaves room for
// multipart framing so oversized files reach the upload handler and get a
// FileTooLarge response instead of a transport-level rejection.
func (c *Config) BodyLimit() int {
	return int(c.Upload.MaxFileSize) + 1024*1024
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil && duration > 0 {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
