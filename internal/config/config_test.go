package config

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MySQLRequiresConnectionVars(t *testing.T) {
	t.Setenv("APP_PORT", "5000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "5000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("ADMIN_JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "fyyur.db", cfg.SQLitePath)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.AdminAuthEnabled())
	assert.False(t, cfg.TokenIssuingEnabled())
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("APP_PORT", "5000")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestLoad_AdminSettings(t *testing.T) {
	t.Setenv("APP_PORT", "5000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("ADMIN_TOKEN_TTL_MIN", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AdminAuthEnabled())
	assert.True(t, cfg.TokenIssuingEnabled())
	assert.Equal(t, 60, cfg.AdminTokenTTLMin)
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 5*time.Second, cfg.TTL)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(RedisConfig{Addr: mr.Addr()})
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	addr := mr.Addr()
	mr.Close()
	assert.Nil(t, NewRedisClient(RedisConfig{Addr: addr}))
}
