package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold bounds how many keys accumulate before expired windows are dropped.
const sweepThreshold = 1024

// MemoryLimiter keeps counters in process memory. It is used when no Redis
// address is configured, so limits are per instance.
type MemoryLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu    sync.Mutex
	state map[string]*attempts
}

type attempts struct {
	count int
	start time.Time
}

func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:    maxAttempts,
		window: window,
		now:    time.Now,
		state:  make(map[string]*attempts),
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.current(key, l.now())
	if a == nil || a.count < l.max {
		return true, 0, nil
	}
	return false, a.start.Add(l.window).Sub(l.now()), nil
}

func (l *MemoryLimiter) Fail(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if a := l.current(key, now); a != nil {
		a.count++
		return nil
	}

	if len(l.state) >= sweepThreshold {
		for k, a := range l.state {
			if !now.Before(a.start.Add(l.window)) {
				delete(l.state, k)
			}
		}
	}
	l.state[key] = &attempts{count: 1, start: now}
	return nil
}

func (l *MemoryLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.state, key)
	return nil
}

func (l *MemoryLimiter) Healthy(ctx context.Context) bool { return true }

// current returns the live window for key, dropping it if it has ended.
// Callers hold l.mu.
func (l *MemoryLimiter) current(key string, now time.Time) *attempts {
	a, ok := l.state[key]
	if !ok {
		return nil
	}
	if !now.Before(a.start.Add(l.window)) {
		delete(l.state, key)
		return nil
	}
	return a
}
