package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	err = client.Ping(context.Background()).Err()
	require.NoError(t, err)

	return client, mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	lim := NewRedisLimiter(client, 2, time.Minute)
	ctx := context.Background()

	d, err := lim.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:10.0.0.1"))

	d, err = lim.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = lim.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	t.Run("counter expires with the window", func(t *testing.T) {
		mr.FastForward(time.Minute)
		d, err := lim.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 1, d.Remaining)
	})
}

func TestRedisLimiter_Reset(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	lim := NewRedisLimiter(client, 1, time.Hour)
	ctx := context.Background()

	_, _ = lim.Allow(ctx, "k")
	d, err := lim.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, d.Allowed)

	require.NoError(t, lim.Reset(ctx, "k"))
	assert.False(t, mr.Exists("ratelimit:k"))

	d, err = lim.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()
	mr.Close()

	lim := NewRedisLimiter(client, 1, time.Hour)
	_, err := lim.Allow(context.Background(), "k")
	assert.Error(t, err)
}
