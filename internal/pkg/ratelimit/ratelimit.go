package ratelimit

import (
	"context"
	"time"
)

// Limiter counts failed attempts per key inside a fixed window that starts
// at the first failure. Once a key reaches the limit it stays blocked until
// the window ends or Reset is called.
type Limiter interface {
	// Allow reports whether key may try again. When it may not, retryAfter
	// is the time left in the current window.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
	Healthy(ctx context.Context) bool
}
