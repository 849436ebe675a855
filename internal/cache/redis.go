package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis server, for deployments running
// more than one instance of this service behind a load balancer — all
// instances then share one memo of recent calculations.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a Redis-backed cache talking to addr (host:port).
// The connection is established lazily on first use.
func NewRedis(addr string, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	body, err := r.client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil (miss) and transport errors both read as a miss;
		// the caller recomputes either way.
		return "", false
	}
	return body, true
}

func (r *Redis) Set(ctx context.Context, key string, body string) error {
	return r.client.Set(ctx, key, body, r.ttl).Err()
}
