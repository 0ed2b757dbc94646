package resilience

import (
	"context"
	"time"
)

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// policy is exhausted. fn reports whether its error may be retried.
func Retry(ctx context.Context, policy RetryPolicy, fn func(attempt int) (retryable bool, err error)) error {
	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		retryable, err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || attempt == policy.MaxRetries {
			break
		}

		timer := time.NewTimer(policy.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
