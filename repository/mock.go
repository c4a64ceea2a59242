package repository

import (
	"context"
	"time"
)

// simulateLatency imitates the round-trip of a real backend call. It returns
// early when the request context is cancelled.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
