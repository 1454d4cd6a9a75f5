// Package database opens the Redis connection used for session bookkeeping.
package database

import (
	"context"
	"fmt"

	"praia-backend/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// ConnectRedis connects to the configured Redis server. Without REDIS_HOST it starts an
// embedded in-process server instead, so token revocation works in demo setups too.
// The returned close function releases the client and any embedded server.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	addr, password := cfg.RedisFullAddr(), cfg.RedisPassword
	var embedded *miniredis.Miniredis
	if !cfg.RedisEnabled() {
		// The embedded server has no auth configured, so REDIS_PASSWORD must not reach it.
		password = ""
		embedded = miniredis.NewMiniRedis()
		if err := embedded.Start(); err != nil {
			return nil, nil, fmt.Errorf("start embedded redis: %w", err)
		}
		addr = embedded.Addr()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // use default DB
	})
	closeFn := func() {
		_ = client.Close()
		if embedded != nil {
			embedded.Close()
		}
	}

	if _, err := client.Ping(ctx).Result(); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, closeFn, nil
}
