package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoad_EngineDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.EngineInterval)
	assert.Equal(t, 6*time.Hour, cfg.CollectionsInterval)
	assert.Equal(t, 400, cfg.EngineBatchSize)
	assert.Equal(t, 8, cfg.EngineConcurrency)
	assert.False(t, cfg.EnableEmailNotifications)
	assert.Equal(t, "dev-secret-change-in-production", cfg.JWTSecret)
}

func TestLoad_ClampsBatchSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ENGINE_BATCH_SIZE", "5000")
	t.Setenv("ENGINE_CONCURRENCY", "-3")
	t.Setenv("ENABLE_EMAIL_NOTIFICATIONS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, maxEngineBatchSize, cfg.EngineBatchSize)
	assert.Equal(t, 1, cfg.EngineConcurrency)
	assert.True(t, cfg.EnableEmailNotifications)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ledger")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required in production")
}
