package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("METRICS_ENABLED", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, float64(5), cfg.LoginRateLimit)
	assert.Empty(t, cfg.RedisAddr, "redis stays disabled unless configured")
}

func TestEnsureSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	cfg := Load()
	require.Empty(t, cfg.SessionSecret, "no public default signing key")

	generated, err := cfg.EnsureSessionSecret()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, cfg.SessionSecret, 64)

	other := Load()
	_, err = other.EnsureSessionSecret()
	require.NoError(t, err)
	assert.NotEqual(t, cfg.SessionSecret, other.SessionSecret)

	t.Setenv("SESSION_SECRET", "from-env")
	configured := Load()
	generated, err = configured.EnsureSessionSecret()
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, "from-env", configured.SessionSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("LOGIN_RATE_LIMIT", "0.5")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 0.5, cfg.LoginRateLimit)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("RESET_DB", "maybe")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.ResetDB)
}
