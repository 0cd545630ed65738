package util

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket shared by the source watcher, which uses it to
// space out re-checks, and the observability server, which keeps one per
// client.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter refills r tokens per second up to a burst of b. A non-positive
// rate disables throttling.
func NewLimiter(r float64, b int) *Limiter {
	limit := rate.Limit(r)
	if r <= 0 {
		limit = rate.Inf
	}
	return &Limiter{inner: rate.NewLimiter(limit, max(b, 1))}
}

// Allow takes one token if one is available now.
func (l *Limiter) Allow() bool {
	return l.inner.Allow()
}

// Delay is how long a caller would wait for the next token. It consumes
// nothing.
func (l *Limiter) Delay() time.Duration {
	now := time.Now()
	r := l.inner.ReserveN(now, 1)
	if !r.OK() {
		return 0
	}
	d := r.DelayFrom(now)
	r.CancelAt(now)
	return d
}
