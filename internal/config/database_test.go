package config

import (
	"testing"
	"time"

	"recipe-admin-backend/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatabaseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadDatabaseConfig()
		require.NoError(t, err)

		assert.Equal(t, 5432, cfg.Port)
		assert.Equal(t, "require", cfg.SSLMode)
		assert.Equal(t, database.PoolerModeSession, cfg.PoolerMode)
		assert.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
	})

	t.Run("reports every malformed variable", func(t *testing.T) {
		t.Setenv("DB_PORT", "abc")
		t.Setenv("DB_RETRY_DELAY", "soon")

		_, err := LoadDatabaseConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PORT")
		assert.Contains(t, err.Error(), "DB_RETRY_DELAY")
	})

	t.Run("unknown pooler mode", func(t *testing.T) {
		t.Setenv("DB_POOLER_MODE", "statement")
		_, err := LoadDatabaseConfig()
		assert.ErrorContains(t, err, "DB_POOLER_MODE")
	})

	t.Run("min above max", func(t *testing.T) {
		t.Setenv("DB_MIN_CONNECTIONS", "20")
		t.Setenv("DB_MAX_CONNECTIONS", "5")
		_, err := LoadDatabaseConfig()
		assert.ErrorContains(t, err, "DB_MIN_CONNECTIONS")
	})
}
