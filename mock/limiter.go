package mock

import (
	"context"

	"github.com/lawcorpus/lexscan"
)

var _ lexscan.OriginLimiter = (*OriginLimiter)(nil)

// OriginLimiter is a mock implementation of lexscan.OriginLimiter.
type OriginLimiter struct {
	WaitFn func(ctx context.Context, origin string) error
}

// Wait invokes WaitFn if set and otherwise returns nil immediately.
func (l *OriginLimiter) Wait(ctx context.Context, origin string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, origin)
}
