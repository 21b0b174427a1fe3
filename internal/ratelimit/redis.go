package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The window lives in one key whose PTTL is the time to reset. A rejected
// call reads but never increments.
var fixedWindow = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
local ttl = redis.call('PTTL', KEYS[1])
if count == 0 or ttl <= 0 then
  redis.call('SET', KEYS[1], 1, 'PX', ARGV[2])
  return {0, 1, tonumber(ARGV[2])}
end
if count >= tonumber(ARGV[1]) then
  return {1, count, ttl}
end
count = redis.call('INCR', KEYS[1])
return {0, count, ttl}
`)

// RedisLimiter shares windows between engine instances. Expiry is left to
// Redis, so it needs no sweep.
type RedisLimiter struct {
	rdb    redis.Scripter
	window time.Duration
	max    int
	prefix string
}

func NewRedis(rdb redis.Scripter, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, window: window, max: max, prefix: "leadgen:rl:"}
}

func (l *RedisLimiter) Check(ctx context.Context, clientID string) (Status, error) {
	res, err := fixedWindow.Run(ctx, l.rdb, []string{l.prefix + clientID}, l.max, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Status{}, fmt.Errorf("ratelimit redis: %w", err)
	}
	if len(res) != 3 {
		return Status{}, fmt.Errorf("ratelimit redis: unexpected reply %v", res)
	}
	count := int(res[1])
	return Status{
		Limited:   res[0] == 1,
		Limit:     l.max,
		Remaining: max(0, l.max-count),
		ResetIn:   time.Duration(res[2]) * time.Millisecond,
	}, nil
}
