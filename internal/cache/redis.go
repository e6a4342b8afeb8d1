package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backend over a shared Redis instance, letting the
// board skip a full season refetch after restarts.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing Redis client. The prefix namespaces keys so
// multiple boards can share one instance.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "scoreboard"
	}
	return &Redis{client: client, prefix: prefix}
}

// Get fetches a value; a Redis miss maps to (nil, false, nil).
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+":"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Set stores a value with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+":"+key, value, ttl).Err()
}
