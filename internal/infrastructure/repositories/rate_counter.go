package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/foodauth/domain"
)

// RedisRateCounter implements domain.RateCounter with INCR and EXPIRE
type RedisRateCounter struct {
	client redis.Cmdable
	prefix string
}

// NewRedisRateCounter creates a new fixed-window counter
func NewRedisRateCounter(client redis.Cmdable) *RedisRateCounter {
	return &RedisRateCounter{client: client, prefix: "ratelimit:"}
}

// Hit implements domain.RateCounter. The window starts with the first hit.
func (r *RedisRateCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	key = r.prefix + key

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate counter %s: %w", key, err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("rate counter %s: %w", key, err)
		}
	}
	ttl := r.client.PTTL(ctx, key)
	if err := ttl.Err(); err != nil {
		return 0, 0, fmt.Errorf("rate counter %s: %w", key, err)
	}

	// A key left without expiry is treated as a fresh window.
	left := ttl.Val()
	if left < 0 {
		r.client.Expire(ctx, key, window)
		left = window
	}
	return count, left, nil
}

var _ domain.RateCounter = (*RedisRateCounter)(nil)
