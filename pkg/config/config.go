package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var ErrMissingBackendURL = errors.New("BACKEND_API_URL is required")

// Application settings
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Snapshot SnapshotConfig
	Backend  BackendConfig
	Redis    RedisConfig
}

// Server settings
type ServerConfig struct {
	Port        string
	HTTPTimeout time.Duration
}

type SnapshotConfig struct {
	TTL            time.Duration
	WorkerPoolSize int
}

type BackendConfig struct {
	APIURL             string
	AccessToken        string
	RefreshToken       string
	RequestTimeout     time.Duration
	RateLimitPerSecond int
	RateLimitBurst     int
}

// Redis snapshot store; empty Addr keeps snapshots in memory
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Logging settings
type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			HTTPTimeout: getDurationEnv("HTTP_TIMEOUT", "30s"),
		},
		Snapshot: SnapshotConfig{
			TTL:            getDurationEnv("SNAPSHOT_TTL", "5m"),
			WorkerPoolSize: getIntEnv("WORKER_POOL_SIZE", 4),
		},
		Backend: BackendConfig{
			APIURL:             getEnv("BACKEND_API_URL", ""),
			AccessToken:        getEnv("BACKEND_ACCESS_TOKEN", ""),
			RefreshToken:       getEnv("BACKEND_REFRESH_TOKEN", ""),
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "15s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 10),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getIntEnv("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getIntEnv("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getIntEnv("LOG_MAX_AGE_DAYS", 28),
		},
	}

	if config.Backend.APIURL == "" {
		return nil, ErrMissingBackendURL
	}
	if config.Snapshot.WorkerPoolSize < 1 {
		config.Snapshot.WorkerPoolSize = 1
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
