package ratelimit

import (
	"context"
	"log"
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps one window per client in process memory. Sweep
// must run periodically to drop expired windows.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration
	max     int
	now     func() time.Time
}

func NewMemory(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// WithClock swaps the time source; for tests.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

// IsLimited counts the call and reports whether it must be rejected.
func (l *MemoryLimiter) IsLimited(clientID string) bool {
	st, _ := l.Check(context.Background(), clientID)
	return st.Limited
}

func (l *MemoryLimiter) Check(_ context.Context, clientID string) (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[clientID]
	limited := false
	switch {
	case !ok || now.After(e.resetAt):
		e = &entry{count: 1, resetAt: now.Add(l.window)}
		l.entries[clientID] = e
	case e.count >= l.max:
		limited = true
	default:
		e.count++
	}

	return Status{
		Limited:   limited,
		Limit:     l.max,
		Remaining: max(0, l.max-e.count),
		ResetIn:   e.resetAt.Sub(now),
	}, nil
}

// Sweep drops windows that have already expired. Its signature matches
// scheduler.Every.
func (l *MemoryLimiter) Sweep(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	dropped := 0
	for id, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, id)
			dropped++
		}
	}
	if dropped > 0 {
		log.Printf("[ratelimit] sweep dropped=%d remaining=%d", dropped, len(l.entries))
	}
	return nil
}

// Len is the number of tracked clients.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
