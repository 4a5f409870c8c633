// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds generic application settings.
type AppConfig struct {
	Port        string
	CORSOrigins []string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	SecretKey   string
	TokenExpiry time.Duration
}

// DatabaseConfig holds the database connection settings.
type DatabaseConfig struct {
	URL           string
	RunMigrations bool
}

// RedisConfig holds the optional cache settings.
// Addr being empty means the service runs without a cache.
type RedisConfig struct {
	Addr     string
	Password string
}

// GeminiConfig holds the external review model settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RateLimitConfig holds the per-client request threshold.
type RateLimitConfig struct {
	PerMinute int
}

// Config is the full configuration for the service.
type Config struct {
	App       AppConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Gemini    GeminiConfig
	RateLimit RateLimitConfig
}

// Load reads configuration from a .env file (if present) and the environment.
// Missing required keys are a startup failure, never a runtime one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in containerized deployments.
		slog.Debug("no .env file loaded", "error", err)
	}

	c := &Config{
		App: AppConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
		},
		Auth: AuthConfig{
			SecretKey:   os.Getenv("SECRET_KEY"),
			TokenExpiry: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		},
		Database: DatabaseConfig{
			URL:           os.Getenv("DATABASE_URL"),
			RunMigrations: getEnv("RUN_MIGRATIONS", "true") == "true",
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		},
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks that every required key is present.
func (c *Config) validate() error {
	required := map[string]string{
		"SECRET_KEY":     c.Auth.SecretKey,
		"DATABASE_URL":   c.Database.URL,
		"GEMINI_API_KEY": c.Gemini.APIKey,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("required environment variable %s is not set", key)
		}
	}
	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimit.PerMinute)
	}
	return nil
}

// getEnv returns the environment value for key, or fallback if unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the integer environment value for key, or fallback if
// unset or not a valid integer.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}

// splitCSV splits a comma-separated value, trimming whitespace around entries.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
