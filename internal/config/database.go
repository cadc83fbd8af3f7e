package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"recipe-admin-backend/internal/infrastructure/database"
)

// envParser gom lỗi parse để báo tất cả biến sai trong một lần
type envParser struct {
	errs []error
}

func (p *envParser) int(key, defaultValue string) int {
	v, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
	}
	return v
}

func (p *envParser) duration(key, defaultValue string) time.Duration {
	v, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
	}
	return v
}

func (p *envParser) err() error {
	return errors.Join(p.errs...)
}

// LoadDatabaseConfig đọc config pool của Supabase Postgres từ environment variables.
// DATABASE_URL (connection string của Supabase) được ưu tiên hơn DB_HOST/DB_PORT/...
func LoadDatabaseConfig() (*database.DBConfig, error) {
	p := &envParser{}

	cfg := &database.DBConfig{
		URL:             getEnv("DATABASE_URL", ""),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            p.int("DB_PORT", "5432"),
		Username:        getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", "postgres"),
		SSLMode:         getEnv("DB_SSLMODE", "require"),
		PoolerMode:      getEnv("DB_POOLER_MODE", database.PoolerModeSession),
		ApplicationName: getEnv("DB_APPLICATION_NAME", "recipe-admin-backend"),

		MaxConns:          int32(p.int("DB_MAX_CONNECTIONS", "10")),
		MinConns:          int32(p.int("DB_MIN_CONNECTIONS", "2")),
		MaxConnLifetime:   p.duration("DB_MAX_CONN_LIFETIME", "30m"),
		MaxConnIdleTime:   p.duration("DB_MAX_CONN_IDLE_TIME", "5m"),
		HealthCheckPeriod: p.duration("DB_HEALTH_CHECK_PERIOD", "1m"),

		MaxRetries:     p.int("DB_MAX_RETRIES", "5"),
		RetryDelay:     p.duration("DB_RETRY_DELAY", "1s"),
		ConnectTimeout: p.duration("DB_CONNECT_TIMEOUT", "10s"),
	}

	if err := p.err(); err != nil {
		return nil, err
	}

	switch cfg.PoolerMode {
	case database.PoolerModeSession, database.PoolerModeTransaction:
	default:
		return nil, fmt.Errorf("invalid DB_POOLER_MODE %q: want %s or %s",
			cfg.PoolerMode, database.PoolerModeSession, database.PoolerModeTransaction)
	}
	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}

	return cfg, nil
}
