package database

import (
	"context"
	"testing"

	"praia-backend/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedisEmbedded(t *testing.T) {
	ctx := context.Background()
	client, closeFn, err := ConnectRedis(ctx, &config.Config{})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
	got, err := client.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestConnectRedisEmbeddedIgnoresPassword(t *testing.T) {
	client, closeFn, err := ConnectRedis(context.Background(), &config.Config{RedisPassword: "secret"})
	require.NoError(t, err)
	defer closeFn()
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestConnectRedisExternalWithPassword(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("secret")

	_, _, err := ConnectRedis(context.Background(), &config.Config{RedisAddr: s.Host(), RedisPort: s.Port()})
	assert.Error(t, err)

	client, closeFn, err := ConnectRedis(context.Background(), &config.Config{RedisAddr: s.Host(), RedisPort: s.Port(), RedisPassword: "secret"})
	require.NoError(t, err)
	defer closeFn()
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestConnectRedisExternal(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := &config.Config{RedisAddr: s.Host(), RedisPort: s.Port()}

	client, closeFn, err := ConnectRedis(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, s.Exists("k"))
}

func TestConnectRedisUnreachable(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	cfg := &config.Config{RedisAddr: s.Host(), RedisPort: s.Port()}
	s.Close()

	_, _, err = ConnectRedis(context.Background(), cfg)
	assert.Error(t, err)
}
