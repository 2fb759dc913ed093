package middleware

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniredisLimiter(t *testing.T, now time.Time) *RedisRateLimiter {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimiter(client, func() time.Time { return now })
}

func TestRedisRateLimiterBlocksOverLimit(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 30, 0, time.UTC)
	limiter := newMiniredisLimiter(t, now)

	rule := RateLimitRule{Rate: 0.01, Burst: 2}
	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("user-1|UPLOAD", rule)
		if !allowed {
			t.Fatalf("request %d within burst must be allowed", i+1)
		}
	}

	allowed, retryAfter := limiter.Allow("user-1|UPLOAD", rule)
	if allowed {
		t.Fatal("request over limit must be blocked")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("retry-after must point at the next window, got %v", retryAfter)
	}
}

func TestRedisRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 30, 0, time.UTC)
	limiter := newMiniredisLimiter(t, now)

	rule := RateLimitRule{Rate: 0.01, Burst: 1}
	if allowed, _ := limiter.Allow("user-1|UPLOAD", rule); !allowed {
		t.Fatal("first request for user-1 must pass")
	}
	if allowed, _ := limiter.Allow("user-1|UPLOAD", rule); allowed {
		t.Fatal("second request for user-1 must be blocked")
	}
	if allowed, _ := limiter.Allow("user-2|UPLOAD", rule); !allowed {
		t.Fatal("user-2 must have an independent window")
	}
}

func TestRedisRateLimiterFailsOpenWhenRedisDown(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter := NewRedisRateLimiter(client, nil)
	srv.Close()

	allowed, _ := limiter.Allow("user-1|DEFAULT", RateLimitRule{Rate: 1, Burst: 1})
	if !allowed {
		t.Fatal("limiter must fail open when redis is unreachable")
	}
}
