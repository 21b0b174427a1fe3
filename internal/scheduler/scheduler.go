// Package scheduler runs periodic background tasks until their context ends.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once immediately and then on every tick until ctx is
// done. Errors are logged and the loop keeps going. Ticks that arrive
// while a run is still in progress are dropped by the ticker.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	if interval <= 0 {
		log.Printf("[%s] disabled: interval=%s", name, interval)
		return
	}
	run := func() {
		if err := task(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}

// Go starts Every in its own goroutine.
func Go(ctx context.Context, interval time.Duration, name string, task Task) {
	go Every(ctx, interval, name, task)
}
