package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port              string
	LogLevel          string
	RedisAddr         string
	CacheTTL          time.Duration
	CacheMaxEntries   int
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	RateLimitSweep    time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", "60s"); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", "1m"); err != nil {
		return nil, err
	}
	if cfg.RateLimitSweep, err = getDuration("RATE_LIMIT_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, err
	}
	if cfg.RateLimitSweep == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_SWEEP_INTERVAL must be positive")
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	if cfg.RateLimitCapacity, err = getPositiveInt("RATE_LIMIT_CAPACITY", "30"); err != nil {
		return nil, err
	}
	if cfg.CacheMaxEntries, err = getPositiveInt("CACHE_MAX_ENTRIES", "10000"); err != nil {
		return nil, err
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getPositiveInt(key, defaultVal string) (int, error) {
	n, err := strconv.Atoi(getEnv(key, defaultVal))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func getDuration(key, defaultVal string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultVal))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
