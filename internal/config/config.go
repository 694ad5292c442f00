package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/zizouhuweidi/trivia/internal/database"
)

// Config holds the application configuration
type Config struct {
	Port             string
	Postgres         *database.PostgresConfig
	Redis            *database.RedisConfig
	RedisEnabled     bool
	CategoryCacheTTL time.Duration
	RateLimit        int // requests per minute per client, 0 disables
	CORSOrigins      []string
	SeedCategories   bool
	LogLevel         log.Lvl
}

// Load reads the configuration from the environment. Values from a .env
// file in the working directory are loaded first when the file exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	rateLimit, err := getEnvInt("RATE_LIMIT", 120)
	if err != nil {
		return nil, err
	}
	if rateLimit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT must not be negative, got %d", rateLimit)
	}

	ttl, err := getEnvDuration("CATEGORY_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	redisEnabled, err := getEnvBool("REDIS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	seed, err := getEnvBool("SEED_CATEGORIES", true)
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port: getEnv("PORT", "8080"),
		Postgres: &database.PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:   getEnv("POSTGRES_DB", "trivia"),
		},
		Redis: &database.RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		RedisEnabled:     redisEnabled,
		CategoryCacheTTL: ttl,
		RateLimit:        rateLimit,
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
		SeedCategories:   seed,
		LogLevel:         level,
	}, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseLogLevel(value string) (log.Lvl, error) {
	switch strings.ToLower(value) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q", value)
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
