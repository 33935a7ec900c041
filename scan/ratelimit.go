package scan

import (
	"context"
	"sync"

	"github.com/lawcorpus/lexscan"
	"golang.org/x/time/rate"
)

var _ lexscan.OriginLimiter = (*OriginLimiter)(nil)

// OriginLimiter provides per-origin rate limiting using token buckets.
// It creates a separate rate limiter for each origin, allowing concurrent
// requests to different origins while enforcing politeness within each.
type OriginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewOriginLimiter creates a new OriginLimiter with the specified requests
// per second limit. Each origin gets its own limiter with a burst of 1 (no
// bursting allowed).
func NewOriginLimiter(rps float64) *OriginLimiter {
	return &OriginLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the origin.
// Returns an error if the context is canceled before the wait completes.
func (l *OriginLimiter) Wait(ctx context.Context, origin string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[origin]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[origin] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
