package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
	Vault    VaultConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	CORSOrigins []string
}

// DatabaseConfig chỉ giữ phần cần cho Validate, pool config đầy đủ nằm ở LoadDatabaseConfig
type DatabaseConfig struct {
	URL      string
	Password string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string // project-ref.supabase.co/storage/v1/s3 hoặc localhost:9000
	AccessKey string
	SecretKey string // rỗng => lấy từ Vault nếu VAULT_ENABLED
	Bucket    string
	UseSSL    bool
	PublicURL string // base URL public của bucket, rỗng => endpoint/bucket
}

// =====================================================
// SUPABASE VAULT
// =====================================================

type VaultConfig struct {
	Enabled         bool
	MinIOSecretName string // tên secret trong vault.secrets chứa MinIO secret key
}

type WorkerConfig struct {
	Concurrency     int
	AuditCron       string
	AuditLimit      int
	ShutdownTimeout int // giây chờ task đang chạy khi tắt worker
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Recipe Admin API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Password: getEnv("DB_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "recipe-images"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimSuffix(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		Vault: VaultConfig{
			Enabled:         getEnvBool("VAULT_ENABLED", false),
			MinIOSecretName: getEnv("VAULT_MINIO_SECRET_NAME", "minio_secret_key"),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 10),
			AuditCron:       getEnv("WORKER_AUDIT_CRON", "0 * * * *"),
			AuditLimit:      getEnvInt("WORKER_AUDIT_LIMIT", 500),
			ShutdownTimeout: getEnvInt("WORKER_SHUTDOWN_TIMEOUT", 30),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}
	if strings.TrimSpace(c.Worker.AuditCron) == "" {
		return fmt.Errorf("WORKER_AUDIT_CRON must not be empty")
	}
	if c.MinIO.Bucket == "" {
		return fmt.Errorf("MINIO_BUCKET must be set")
	}

	if c.IsProduction() {
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DATABASE_URL or DB_PASSWORD must be set in production")
		}
		if c.MinIO.SecretKey == "" && !c.Vault.Enabled {
			return fmt.Errorf("MINIO_SECRET_KEY must be set in production when VAULT_ENABLED is false")
		}
		for _, origin := range c.App.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ALLOWED_ORIGINS must not contain * in production")
			}
		}
	}

	return nil
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

// getEnvList tách giá trị theo dấu phẩy, bỏ phần tử rỗng
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
