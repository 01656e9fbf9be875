package app

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"tha-drop/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9000 ")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr("  ")
	require.Error(t, err)
}

func TestBootstrap_MemoryDriver(t *testing.T) {
	cfg := config.Config{
		App:   config.AppConfig{AppName: "tha-drop-test", HTTPPort: "0"},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
		Redis: config.RedisConfig{Host: "127.0.0.1", Port: "1"},
		JWT:   config.JWTConfig{AccessSecret: "a", RefreshSecret: "r", AccessExpiresIn: 60e9, RefreshExpiresIn: 120e9},
	}

	app, cleanup, err := Bootstrap(cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	resp, err := app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/hiring?role=DJ", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNewContainer_RejectsUnknownDriver(t *testing.T) {
	_, err := NewContainer(config.Config{Store: config.StoreConfig{Driver: "sqlite"}}, log.New(io.Discard, "", 0))
	require.Error(t, err)
}
