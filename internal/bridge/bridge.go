// Package bridge glues the interoperability client to the vehicle bus.
// Each service is one long-running loop owned by a daemon; a failed poll is
// logged and the loop keeps going.
package bridge

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Publisher sends a message on the vehicle bus. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Cache stores the latest snapshot of a bus document for late joiners.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache backs Cache with a Redis instance.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// logFailure warns on timeouts and errors on everything else, so a flaky
// link does not flood the error log.
func logFailure(logger zerolog.Logger, what string, err error) {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		logger.Warn().Err(err).Msg(what + " timed out")
		return
	}
	logger.Error().Err(err).Msg(what + " failed")
}
