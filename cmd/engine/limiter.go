package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/ratelimit"
	"leadgen-engine/internal/scheduler"
)

// newRateLimiter picks the backend named in cfg. The returned sweep task
// is nil for Redis, which expires windows itself.
func newRateLimiter(ctx context.Context, cfg config.RateLimitConfig) (ratelimit.Limiter, scheduler.Task, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		mem := ratelimit.NewMemory(cfg.Window(), cfg.MaxRequests)
		return mem, mem.Sweep, func() {}, nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse redis_url: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			// requests still go through while redis is down
			log.Printf("[ratelimit] redis ping %s: %v", opts.Addr, err)
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Printf("[ratelimit] redis close: %v", err)
			}
		}
		return ratelimit.NewRedis(rdb, cfg.Window(), cfg.MaxRequests), nil, closeFn, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown rate_limit backend %q", cfg.Backend)
	}
}
