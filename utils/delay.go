package utils

import (
	"context"
	"time"
)

// DelayFunc pauses for d or until ctx is done.
// Scrapers take one so tests can swap in NoDelay.
type DelayFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real DelayFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoDelay returns immediately unless ctx is already done.
func NoDelay(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
