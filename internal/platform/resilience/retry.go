package resilience

import (
	"context"
	"time"
)

// RetryPolicy retries with a linear backoff: attempt n waits n*Backoff.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
	// Retryable decides whether an error is worth another attempt. Nil
	// retries every error.
	Retryable func(error) bool
}

// Do runs fn through the breaker until it succeeds, returns a permanent
// error, or the retries are exhausted. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, breaker *Breaker, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(attempt)*p.Backoff); err != nil {
				return err
			}
		}

		if err := breaker.Allow(); err != nil {
			return err
		}
		err := fn(ctx)
		if err == nil {
			breaker.Success()
			return nil
		}
		lastErr = err

		// A permanent error means the upstream answered, so it does not
		// count against the breaker.
		if p.Retryable != nil && !p.Retryable(err) {
			breaker.Success()
			return err
		}
		breaker.Failure()
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
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
