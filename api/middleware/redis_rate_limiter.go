// api/middleware/redis_rate_limiter.go
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed window counter shared by every instance using the same Redis.
// When Redis is unreachable requests are let through.
type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisRateLimiter counts requests in client under "ratelimit:" keys.
func NewRedisRateLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
		now:    time.Now,
	}
}

func (rl *RedisRateLimiter) key(ip string) string {
	bucket := rl.now().UnixNano() / int64(rl.window)
	return fmt.Sprintf("%s:%s:%d", rl.prefix, ip, bucket)
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, ip string) bool {
	key := rl.key(ip)

	pipe := rl.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		customLog.Warnf("RateLimit: Redis unavailable, allowing request from %s: %v", ip, err)
		return true
	}
	return count.Val() <= int64(rl.limit)
}
