package client

import (
	"context"
	"sync"
	"time"
)

// IdleTimer signs the user out after a stretch of inactivity. Touch is the
// Go stand-in for the browser's mouse/touch/scroll listeners. Inactivity is
// a separate concern from token staleness, but both end in the same forced
// sign-out.
type IdleTimer struct {
	timeout time.Duration
	onIdle  func()

	mu       sync.Mutex
	deadline time.Time
}

func NewIdleTimer(timeout time.Duration, onIdle func()) *IdleTimer {
	return &IdleTimer{
		timeout:  timeout,
		onIdle:   onIdle,
		deadline: time.Now().Add(timeout),
	}
}

// Touch resets the inactivity deadline. Safe from any goroutine.
func (t *IdleTimer) Touch() {
	t.mu.Lock()
	t.deadline = time.Now().Add(t.timeout)
	t.mu.Unlock()
}

// Run blocks until the deadline passes without a Touch, then fires onIdle
// once. Cancelling the context stops the timer without firing.
func (t *IdleTimer) Run(ctx context.Context) {
	for {
		t.mu.Lock()
		remaining := time.Until(t.deadline)
		t.mu.Unlock()

		if remaining <= 0 {
			if t.onIdle != nil {
				t.onIdle()
			}
			return
		}

		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			// Re-check the deadline: a Touch may have pushed it out while
			// we were waiting.
		}
	}
}
