package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shop")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, int32(2), cfg.DBMinConns)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 100, cfg.RateLimitRPM)
	assert.Equal(t, 10, cfg.AuthRateLimitRPM)
	assert.Equal(t, 400*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "./data/media", cfg.MediaRoot)
	assert.Equal(t, "./data/.thumbnails", cfg.ThumbnailRoot)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shop")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://admin.example.com, https://shop.example.com")
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, []string{"https://admin.example.com", "https://shop.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessTTL)
	// Unparseable values fall back to the default.
	assert.Equal(t, int32(10), cfg.DBMaxConns)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shop")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidateConnBounds(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shop")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MIN_CONNS")
}
