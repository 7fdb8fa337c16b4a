package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	UpstreamURL        string // Base URL of the config server that owns the backups
	DatabasePath       string
	LogLevel           string
	LogFile            string // Optional, rotated file output in addition to stderr
	AllowedOrigins     []string
	RequestTimeout     time.Duration
	NotificationTTL    time.Duration
	ReloadDelay        time.Duration
	EventRetentionDays int
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory, if present, is read first; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8090"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	retention, err := strconv.Atoi(getEnv("EVENT_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION_DAYS: %w", err)
	}

	timeout, err := getDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getDuration("NOTIFICATION_TTL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	reload, err := getDuration("RELOAD_DELAY", 1500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:         port,
		UpstreamURL:        strings.TrimRight(getEnv("UPSTREAM_URL", "http://127.0.0.1:5000"), "/"),
		DatabasePath:       getEnv("DATABASE_PATH", "./panel.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", ""),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:8090")),
		RequestTimeout:     timeout,
		NotificationTTL:    ttl,
		ReloadDelay:        reload,
		EventRetentionDays: retention,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
