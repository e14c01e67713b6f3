package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyTTL keeps each window key for one extra window before Redis drops it.
const redisKeyTTL = 2 * window

// incrWithExpiry increments the window counter and sets its expiry on first use.
var incrWithExpiry = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RedisLimiter shares fixed-window counters across instances through Redis.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisLimiter constructs a RedisLimiter writing keys under prefix.
func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: strings.Trim(strings.TrimSpace(prefix), ":")}
}

// Allow consumes one request for key in the window containing now.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, now time.Time) (Result, error) {
	if l == nil || l.client == nil || limit <= 0 || key == "" {
		return Result{Allowed: true}, nil
	}
	start, reset := windowStart(now)

	count, errRun := incrWithExpiry.Run(ctx, l.client, []string{l.windowKey(key, start)}, redisKeyTTL.Milliseconds()).Int64()
	if errRun != nil {
		return Result{}, fmt.Errorf("rate limit redis: %w", errRun)
	}
	if count > int64(limit) {
		return Result{Allowed: false, Reset: reset}, nil
	}
	return Result{Allowed: true, Remaining: limit - int(count), Reset: reset}, nil
}

// windowKey renders "<prefix>:<key>:<window start>".
func (l *RedisLimiter) windowKey(key string, start int64) string {
	parts := make([]string, 0, 3)
	if l.prefix != "" {
		parts = append(parts, l.prefix)
	}
	parts = append(parts, key, strconv.FormatInt(start, 10))
	return strings.Join(parts, ":")
}
