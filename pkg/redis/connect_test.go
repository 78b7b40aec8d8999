package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/redis"
)

func testConfig(url string) redis.Config {
	return redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: time.Second,
	}
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("connects to a live server", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)

		client, err := redis.Connect(context.Background(), testConfig("redis://"+mr.Addr()))
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("rejects a malformed url", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), testConfig("not-a-url"))
		assert.ErrorIs(t, err, redis.ErrInvalidConnectionURL)
	})

	t.Run("gives up when the server never answers", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), testConfig("redis://127.0.0.1:1"))
		assert.ErrorIs(t, err, redis.ErrNotReady)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client, err := redis.Connect(context.Background(), testConfig("redis://"+mr.Addr()))
	require.NoError(t, err)
	defer client.Close()

	check := redis.Healthcheck(client)
	assert.NoError(t, check(context.Background()))

	mr.Close()
	assert.ErrorIs(t, check(context.Background()), redis.ErrHealthcheckFailed)
}
