package utils

import (
	"context"
	"fmt"
	"time"
)

// Retry runs fn up to maxRetries times, stopping at the first success.
// Between attempts it waits base, 2*base, 4*base... through delay.
// The last error is returned once all attempts are used or ctx is done.
func Retry(ctx context.Context, maxRetries int, base time.Duration, delay DelayFunc, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if delay == nil {
		delay = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < maxRetries {
			wait := base * time.Duration(1<<uint(attempt-1))
			Warn("Attempt %d/%d failed: %v, retrying in %v", attempt, maxRetries, lastErr, wait)
			if err := delay(ctx, wait); err != nil {
				return fmt.Errorf("retry aborted after attempt %d: %w", attempt, lastErr)
			}
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}
