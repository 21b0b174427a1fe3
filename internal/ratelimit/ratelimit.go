// Package ratelimit throttles lead runs per client with a fixed window:
// the first call opens a window, at most Max calls are accepted inside
// it, and rejected calls do not count.
package ratelimit

import (
	"context"
	"math"
	"time"
)

type Status struct {
	Limited   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// ResetSeconds rounds ResetIn up, as sent in X-RateLimit-Reset.
func (s Status) ResetSeconds() int {
	return int(math.Ceil(s.ResetIn.Seconds()))
}

type Limiter interface {
	Check(ctx context.Context, clientID string) (Status, error)
}
