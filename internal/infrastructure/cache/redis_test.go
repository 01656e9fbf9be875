package cache

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"tha-drop/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableBypasses(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	// Nothing listens on port 1.
	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: "1", TTL: time.Minute}, logger)
	ctx := context.Background()

	var out map[string]any
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.DeleteByPattern(ctx, "k*"))

	ok, err := r.SetIfNotExists(ctx, "lock", "1", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	require.Error(t, r.Ping(ctx))
	require.NoError(t, r.Close())
	assert.Contains(t, buf.String(), "[Cache] Redis unavailable")
}

func TestRedis_WarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	r := NewRedisWithClient(client, time.Minute, logger)
	t.Cleanup(func() { _ = r.Close() })

	ctx := context.Background()
	var out any
	_, err1 := r.GetJSON(ctx, "a", &out)
	_, err2 := r.GetJSON(ctx, "b", &out)
	require.Error(t, err1)
	require.Error(t, err2)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("bypassing cache")))
}

func TestRedis_NilReceiverIsSafe(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", new(int))
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, r.SetJSON(context.Background(), "k", 1, 0))
}
