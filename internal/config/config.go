// Package config handles application configuration.
package config

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// devSecret is only accepted outside production.
	devSecret = "change-me-in-production"
)

var defaultCORSOrigins = []string{
	"http://localhost",
	"http://localhost:1420",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"tauri://localhost",
	"capacitor://localhost",
}

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port                       int
	BaseURL                    string
	Environment                string
	CORSOrigins                []string
	RateLimitPerMinute         int
	UpstreamRateLimitPerMinute int           // shared budget of requests that reach Crawlbase; 0 disables it
	IdleTimeout                time.Duration // 0 disables idle shutdown

	// Database
	DatabaseURL string

	// Encryption of profile tokens and metadata
	SecretKey     string
	EncryptionKey []byte // 32-byte key for AES-256-GCM

	// Crawlbase upstream
	CrawlbaseBaseURL string
	CrawlbaseTimeout time.Duration

	// Usage dashboard
	DashboardCacheTTL time.Duration

	// Files
	OutputDir       string
	ProfileSeedPath string

	// Object Storage (S3-compatible), used to mirror scrape workbooks
	StorageEnabled   bool
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageRegion    string
}

// Load reads configuration from environment variables, after loading
// an optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getEnvInt("PORT", 8000),
		Environment:        strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		CORSOrigins:        getEnvSlice("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 300),
		IdleTimeout:        getEnvDuration("IDLE_TIMEOUT", 0),

		UpstreamRateLimitPerMinute: getEnvInt("UPSTREAM_RATE_LIMIT_PER_MINUTE", 60),

		DatabaseURL: getEnv("DATABASE_URL", "file:data/crawldesk.db"),
		SecretKey:   getEnv("APP_SECRET_KEY", ""),

		CrawlbaseBaseURL: strings.TrimRight(getEnv("CRAWLBASE_BASE_URL", "https://api.crawlbase.com"), "/"),
		CrawlbaseTimeout: getEnvDuration("CRAWLBASE_TIMEOUT", 30*time.Second),

		DashboardCacheTTL: getEnvSeconds("DASHBOARD_CACHE_TTL", 180*time.Second),

		OutputDir:       getEnv("OUTPUT_DIR", "output"),
		ProfileSeedPath: getEnv("PROFILE_SEED_PATH", "seed_data/first_profile.json"),

		StorageEndpoint:  getEnv("AWS_ENDPOINT_URL_S3", ""),
		StorageAccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		StorageSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		StorageBucket:    getEnvWithFallback("STORAGE_BUCKET", "BUCKET_NAME", ""),
		StorageRegion:    getEnv("AWS_REGION", "auto"),
	}
	cfg.BaseURL = getEnv("BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.Port))

	// Enable storage if bucket is configured
	cfg.StorageEnabled = cfg.StorageBucket != "" && cfg.StorageEndpoint != ""

	encKeyStr := getEnv("ENCRYPTION_KEY", "")
	switch {
	case encKeyStr != "":
		decoded, err := base64.StdEncoding.DecodeString(encKeyStr)
		if err != nil || len(decoded) != 32 {
			return nil, fmt.Errorf("ENCRYPTION_KEY must be a base64-encoded 32-byte key")
		}
		cfg.EncryptionKey = decoded
	case cfg.SecretKey != "":
		cfg.EncryptionKey = deriveEncryptionKey(cfg.SecretKey)
	case cfg.IsProduction():
		return nil, fmt.Errorf("APP_SECRET_KEY or ENCRYPTION_KEY is required when APP_ENV=%s", EnvProduction)
	default:
		cfg.SecretKey = devSecret
		cfg.EncryptionKey = deriveEncryptionKey(devSecret)
	}

	if cfg.DashboardCacheTTL < 0 {
		return nil, fmt.Errorf("DASHBOARD_CACHE_TTL must not be negative")
	}

	return cfg, nil
}

// IsProduction returns true when APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// UsesDevSecret reports whether the built-in development secret is in use.
func (c *Config) UsesDevSecret() bool {
	return c.SecretKey == devSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvSeconds accepts either a bare number of seconds ("180") or a Go duration ("3m").
func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return getEnvDuration(key, defaultValue)
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvWithFallback(primary, fallback, defaultValue string) string {
	if value := os.Getenv(primary); value != "" {
		return value
	}
	if value := os.Getenv(fallback); value != "" {
		return value
	}
	return defaultValue
}

// deriveEncryptionKey creates a 32-byte AES-256 key from APP_SECRET_KEY using HKDF-SHA256.
func deriveEncryptionKey(secret string) []byte {
	salt := []byte("crawldesk-profile-tokens-v1")
	info := []byte("aes-256-gcm-encryption")

	hkdfReader := hkdf.New(sha256.New, []byte(secret), salt, info)

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdfReader, key); err != nil {
		panic("hkdf: failed to derive key: " + err.Error())
	}

	return key
}
