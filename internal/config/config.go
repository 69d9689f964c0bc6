// Package config loads service settings from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Model backends
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config holds every runtime setting
type Config struct {
	Port         string
	Env          string
	ModelBackend string        // local: JSON artifact, remote: ML service
	ModelPath    string        // artifact path for the local backend
	MLServiceURL string        // base URL for the remote backend
	MLTimeout    time.Duration // per-call timeout for the remote backend
	DatabaseURL  string        // optional prediction audit log
	LogLevel     string
	LogFormat    string // json or text
}

// Load reads a .env file if present, then the environment.
// It reports whether a .env file was found.
func Load() (*Config, bool) {
	found := godotenv.Load() == nil
	return FromEnv(), found
}

// FromEnv builds a Config from environment variables with defaults
func FromEnv() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("GO_ENV", "development"),
		ModelBackend: strings.ToLower(getEnv("MODEL_BACKEND", BackendLocal)),
		ModelPath:    getEnv("MODEL_PATH", "models/insurance_premium.json"),
		MLServiceURL: strings.TrimRight(getEnv("ML_SERVICE_URL", "http://localhost:8000"), "/"),
		MLTimeout:    30 * time.Second,
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}

	if v := os.Getenv("ML_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.MLTimeout = d
		}
	}

	return cfg
}

// IsProduction reports whether GO_ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
