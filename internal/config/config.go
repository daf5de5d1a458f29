package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the full runtime configuration. It is loaded once at startup
// from environment variables and passed explicitly to the components that
// need it; nothing reads the environment after Load returns.
type Config struct {
	// Server
	Port    string
	DBPath  string
	BaseURL string

	// Signing secret shared by session and reset tokens. The two token
	// kinds are separated by purpose, not by key.
	Secret string

	// Session
	RememberTTL  time.Duration
	CookieSecure bool

	// Password reset
	ResetMaxAge time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from DORMCART_* environment variables.
// DORMCART_SECRET is required; everything else has a default.
func Load() (*Config, error) {
	port := getEnv("DORMCART_PORT", "8080")
	cfg := &Config{
		Port:         port,
		BaseURL:      getEnv("DORMCART_BASE_URL", "http://localhost:"+port),
		DBPath:       getEnv("DORMCART_DB_PATH", "dormcart.db"),
		Secret:       os.Getenv("DORMCART_SECRET"),
		RememberTTL:  time.Duration(getEnvInt("DORMCART_REMEMBER_DAYS", 30)) * 24 * time.Hour,
		ResetMaxAge:  time.Duration(getEnvInt("DORMCART_RESET_MAX_AGE_SECONDS", 3600)) * time.Second,
		CookieSecure: getEnvBool("DORMCART_COOKIE_SECURE", false),
		LogLevel:     getEnv("DORMCART_LOG_LEVEL", "info"),
		LogFormat:    getEnv("DORMCART_LOG_FORMAT", "text"),
	}

	if cfg.Secret == "" {
		return nil, fmt.Errorf("required environment variable DORMCART_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
