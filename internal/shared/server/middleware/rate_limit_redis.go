package middleware

import (
	"context"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"contract-backend/internal/shared/telemetry"
)

// RedisRateLimiter is a fixed-window limiter shared across instances.
// On Redis errors it fails open so a cache outage never blocks traffic.
type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, now func() time.Time) *RedisRateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RedisRateLimiter{client: client, now: now}
}

func (l *RedisRateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || l.client == nil {
		return true, 0
	}
	if rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}

	window := time.Minute
	limit := int64(math.Ceil(rule.Rate * window.Seconds()))
	if burst := int64(rule.Burst); burst > limit {
		limit = burst
	}

	now := l.now()
	windowStart := now.Truncate(window)
	redisKey := "ratelimit:" + key + ":" + windowStart.UTC().Format("200601021504")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		telemetry.Warn("ratelimit.redis_unavailable", map[string]any{"error": err.Error()})
		return true, 0
	}

	if incr.Val() <= limit {
		return true, 0
	}
	return false, windowStart.Add(window).Sub(now)
}
