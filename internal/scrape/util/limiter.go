package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter paces outbound requests per hostname so one run never
// hammers html.duckduckgo.com or search.brave.com. A nil *HostLimiter
// never waits.
type HostLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if lim, ok := hl.m[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.r, hl.b)
	hl.m[host] = lim
	return lim
}

// SetRate retunes every host limiter, used after a config reload.
func (hl *HostLimiter) SetRate(reqPerSec float64, burst int) {
	if hl == nil {
		return
	}
	hl.mu.Lock()
	defer hl.mu.Unlock()
	hl.r = rate.Limit(reqPerSec)
	hl.b = burst
	for _, lim := range hl.m {
		lim.SetLimit(hl.r)
		lim.SetBurst(hl.b)
	}
}

func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	if hl == nil {
		return ctx.Err()
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.limiterFor("_").Wait(ctx)
	}
	return hl.limiterFor(u.Host).Wait(ctx)
}
