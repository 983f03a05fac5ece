package credstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed Store.
type RedisConfig struct {
	// Prefix namespaces the slot keys, typically per device or per
	// server-rendered session. Defaults to "ck".
	Prefix string
	// TTL bounds how long a persisted token outlives its last write.
	// Zero keeps tokens until deleted.
	TTL time.Duration
	// OpTimeout caps each Redis round-trip so a stalled backend degrades
	// to "no token" instead of blocking bootstrap.
	OpTimeout time.Duration
}

// Redis persists token slots in Redis. Used by the server-rendering tier,
// where the browsing context has no local storage of its own. All failures
// are absorbed per the Store contract.
type Redis struct {
	client *redis.Client
	cfg    RedisConfig
}

// NewRedis creates a Redis-backed store.
func NewRedis(client *redis.Client, cfg RedisConfig) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = "ck"
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 2 * time.Second
	}
	return &Redis{client: client, cfg: cfg}
}

func (r *Redis) key(slot string) string {
	return r.cfg.Prefix + ":" + slot
}

func (r *Redis) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.cfg.OpTimeout)
}

// TryRead implements Store. Missing keys and backend failures both read as
// absent.
func (r *Redis) TryRead(key string) (string, bool) {
	if r == nil || r.client == nil {
		return "", false
	}

	ctx, cancel := r.opContext()
	defer cancel()

	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false
		}
		return "", false
	}
	return v, true
}

// TryWrite implements Store.
func (r *Redis) TryWrite(key, value string) bool {
	if r == nil || r.client == nil {
		return false
	}

	ctx, cancel := r.opContext()
	defer cancel()

	return r.client.Set(ctx, r.key(key), value, r.cfg.TTL).Err() == nil
}

// TryDelete implements Store.
func (r *Redis) TryDelete(key string) bool {
	if r == nil || r.client == nil {
		return false
	}

	ctx, cancel := r.opContext()
	defer cancel()

	return r.client.Del(ctx, r.key(key)).Err() == nil
}
