package paperless

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// transientError marks an error as eligible for another attempt.
type transientError struct {
	err        error
	retryAfter time.Duration
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// markTransient wraps err so withRetry will try again. A positive
// retryAfter overrides the computed backoff when it is longer.
func markTransient(err error, retryAfter time.Duration) error {
	return &transientError{err: err, retryAfter: retryAfter}
}

// exhaustedError is returned when every allowed attempt failed with a
// transient error. The message is intentionally stable; the last
// attempt's error stays reachable through Unwrap.
type exhaustedError struct {
	attempts int
	last     error
}

func (e *exhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts", e.attempts)
}

func (e *exhaustedError) Unwrap() error { return e.last }

type backoffFunc func(attempt int) time.Duration

// expBackoff waits 2^attempt seconds, capped at 30s.
func expBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return 30 * time.Second
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > 30*time.Second {
		return 30 * time.Second
	}
	return d
}

// withRetry runs fn up to maxAttempts times. Only errors marked with
// markTransient are retried; any other error aborts immediately and is
// returned as-is. Waiting between attempts respects ctx cancellation.
func withRetry(ctx context.Context, maxAttempts int, backoff backoffFunc, fn func(attempt int) error) error {
	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		var transient *transientError
		if !errors.As(err, &transient) {
			return err
		}
		last = transient.err
		if attempt == maxAttempts {
			break
		}
		wait := backoff(attempt)
		if transient.retryAfter > wait {
			wait = transient.retryAfter
		}
		if !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
	return &exhaustedError{attempts: maxAttempts, last: last}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
