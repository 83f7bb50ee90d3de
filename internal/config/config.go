package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSessionSecret = "change-me-session-secret"
	insecureAPIKey       = "your-secret-api-key"

	ReadModePublic  = "public"
	ReadModePrivate = "private"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Session      SessionConfig
	Catalog      CatalogConfig
	Notification NotificationConfig
	MinIO        MinIOConfig
	Worker       WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type DatabaseConfig struct {
	AutoMigrate  bool
	StoreTimeout time.Duration // per-call deadline at the store boundary
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type CatalogConfig struct {
	ReadMode string // public | private
}

type NotificationConfig struct {
	APIKey    string
	Retention time.Duration // read notifications older than this are purged
}

type MinIOConfig struct {
	Endpoint        string
	AccessKey       string
	SecretKey       string
	Bucket          string
	UseSSL          bool
	ArtworkMaxBytes int64
}

type WorkerConfig struct {
	Concurrency int
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "StreamHub API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			AutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", false),
			StoreTimeout: getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", defaultSessionSecret),
			TTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "streamhub_session"),
			Secure:     getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Catalog: CatalogConfig{
			ReadMode: strings.ToLower(getEnv("CATALOG_READ_MODE", ReadModePublic)),
		},
		Notification: NotificationConfig{
			APIKey:    os.Getenv("NOTIFICATION_API_KEY"),
			Retention: getEnvDuration("NOTIFICATION_RETENTION", 720*time.Hour),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:       getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:       getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:          getEnv("MINIO_BUCKET", "streamhub"),
			UseSSL:          getEnvBool("MINIO_USE_SSL", false),
			ArtworkMaxBytes: int64(getEnvInt("ARTWORK_MAX_BYTES", 5*1024*1024)),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	apiKey := strings.TrimSpace(c.Notification.APIKey)
	if apiKey == "" || apiKey == insecureAPIKey {
		return fmt.Errorf("NOTIFICATION_API_KEY must be set to a non-default value")
	}

	if c.Catalog.ReadMode != ReadModePublic && c.Catalog.ReadMode != ReadModePrivate {
		return fmt.Errorf("CATALOG_READ_MODE must be %q or %q, got %q", ReadModePublic, ReadModePrivate, c.Catalog.ReadMode)
	}

	if c.Database.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.App.Environment == "production" {
		if c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
		if getEnv("DB_PASSWORD", "") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
