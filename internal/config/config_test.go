package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "tha-drop")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Contains(t, cfg.Database.DSN(), "dbname=tha_drop")
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"APP_NAME", "HTTP_PORT", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
}

func TestLoad_StoreDriver(t *testing.T) {
	setRequired(t)

	t.Setenv("STORE_DRIVER", " Mongo ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)

	t.Setenv("STORE_DRIVER", "sqlite")
	_, err = Load()
	require.ErrorIs(t, err, errInvalidStoreDriver)
}
