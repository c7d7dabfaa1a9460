package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ProjectName string
	APIPrefix   string
	ServerPort  string

	DatabaseURL string

	RedisAddr string
	RedisDB   int
	RedisPass string

	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	HTTPClientTimeout time.Duration
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ProjectName: getEnv("PROJECT_NAME", "CivicTrack"),
		APIPrefix:   getEnv("API_PREFIX", "/api/v1"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=civictrack port=5432 sslmode=disable"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		SecretKey:                getEnv("SECRET_KEY", "change-me"),
		Algorithm:                getEnv("ALGORITHM", "HS256"),
		AccessTokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),

		HTTPClientTimeout: time.Duration(getEnvInt("HTTP_CLIENT_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	// Tokens are signed with HMAC only; anything else is a misconfiguration.
	if cfg.Algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported ALGORITHM %q, only HS256 is supported", cfg.Algorithm)
	}

	return cfg, nil
}

// AccessTokenExpiry returns the configured access token lifetime.
func (c *Config) AccessTokenExpiry() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
