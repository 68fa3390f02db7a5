package pricing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter bounds the number of quote provider calls issued per period.
// It is a token bucket: up to `calls` acquisitions pass immediately, then
// callers block until the bucket refills. Safe for concurrent use.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing `calls` provider requests per
// `period`.
func NewLimiter(calls int, period time.Duration) *Limiter {
	if calls <= 0 {
		calls = 1
	}
	if period <= 0 {
		period = time.Minute
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(float64(calls)/period.Seconds()), calls),
	}
}

// Acquire blocks until a provider call is permitted or the context is
// cancelled.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
