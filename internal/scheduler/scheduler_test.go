package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"leadgen-engine/internal/scheduler"
)

func TestEveryRunsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	done := make(chan struct{})
	go func() {
		scheduler.Every(ctx, 5*time.Millisecond, "test", func(context.Context) error {
			if runs.Add(1) >= 3 {
				cancel()
			}
			return errors.New("keeps going")
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Every did not return after cancel")
	}
	if n := runs.Load(); n < 3 {
		t.Errorf("runs = %d, want >= 3", n)
	}
}

func TestEveryDisabled(t *testing.T) {
	called := false
	scheduler.Every(context.Background(), 0, "off", func(context.Context) error {
		called = true
		return nil
	})
	if called {
		t.Error("task ran with zero interval")
	}
}
