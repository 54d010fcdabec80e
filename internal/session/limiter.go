package session

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginLimiter throttles login attempts per email. It exists to slow online
// password guessing, not to be a durable record, so state is in-process and
// idle entries are dropped on sweep.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(2 * time.Second),
		burst:    5,
	}
}

func (l *loginLimiter) allow(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[email]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[email] = entry
		l.sweepLocked()
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// sweepLocked drops entries idle for over an hour. Called with the lock held
// whenever a new email shows up, which bounds the map without a background
// goroutine.
func (l *loginLimiter) sweepLocked() {
	cutoff := time.Now().Add(-time.Hour)
	for email, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, email)
		}
	}
}
