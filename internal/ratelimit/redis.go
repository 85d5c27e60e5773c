package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter enforces the same fixed-window semantics as MemoryLimiter
// against a shared Redis instance, so counters survive restarts and are
// consistent across replicas. Windows are aligned time buckets: the key
// embeds the bucket index and expires with the window.
type RedisLimiter struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter on an existing Redis client.
func NewRedisLimiter(client redis.UniversalClient) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: "ratelimit:", now: time.Now}
}

// WithClock overrides the time source, for tests.
func (l *RedisLimiter) WithClock(now func() time.Time) *RedisLimiter {
	l.now = now
	return l
}

// Allow atomically increments the bucket counter. INCR serializes concurrent
// attempts on the Redis side, so the counter never under-counts.
func (l *RedisLimiter) Allow(ctx context.Context, identifier, action string, p Policy) (bool, error) {
	if p.Limit <= 0 || p.Window <= 0 {
		return true, nil
	}

	bucket := l.now().UnixNano() / int64(p.Window)
	key := fmt.Sprintf("%s%s|%s|%d", l.prefix, identifier, action, bucket)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		// Best effort: a lost expire leaves a stale key that the next
		// bucket ignores anyway.
		l.client.Expire(ctx, key, p.Window)
	}

	return count <= int64(p.Limit), nil
}
