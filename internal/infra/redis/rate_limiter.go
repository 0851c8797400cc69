package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter enforces a fixed-window per-user cap on AI commands. Fail-open:
// a Redis error never blocks a request.
type RateLimiter struct {
	cli    RedisClient
	limit  int
	window time.Duration
}

func NewRateLimiter(cli RedisClient, limit int) *RateLimiter {
	return &RateLimiter{cli: cli, limit: limit, window: time.Minute}
}

// Allow reports whether the user may issue another AI command in the current
// window.
func (r *RateLimiter) Allow(ctx context.Context, userID string) bool {
	if r == nil || r.cli == nil || r.limit <= 0 {
		return true
	}
	key := fmt.Sprintf("ratelimit:ai:%s:%d", userID, time.Now().Unix()/int64(r.window.Seconds()))
	n, err := r.cli.Incr(ctx, key)
	if err != nil {
		return true
	}
	if n == 1 {
		_ = r.cli.Expire(ctx, key, r.window)
	}
	return n <= int64(r.limit)
}
