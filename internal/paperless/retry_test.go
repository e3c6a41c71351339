package paperless

import (
	"context"
	"errors"
	"testing"
	"time"
)

func noBackoff(int) time.Duration { return 0 }

func TestWithRetryTransientThenSuccess(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, noBackoff, func(attempt int) error {
		calls++
		if attempt < 3 {
			return markTransient(errors.New("flaky"), 0)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("want 3 attempts, got %d", calls)
	}
}

func TestWithRetryFatalStopsImmediately(t *testing.T) {
	fatal := errors.New("bad request")
	calls := 0
	err := withRetry(context.Background(), 3, noBackoff, func(int) error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("want the fatal error back, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("fatal error must not be retried, got %d attempts", calls)
	}
}

func TestWithRetryExhaustion(t *testing.T) {
	last := errors.New("still down")
	calls := 0
	err := withRetry(context.Background(), 3, noBackoff, func(int) error {
		calls++
		return markTransient(last, 0)
	})
	if calls != 3 {
		t.Fatalf("want 3 attempts, got %d", calls)
	}
	if err == nil || err.Error() != "failed after 3 attempts" {
		t.Fatalf("want exhaustion message, got %v", err)
	}
	if !errors.Is(err, last) {
		t.Fatal("last attempt's error must stay reachable through Unwrap")
	}
}

func TestWithRetryHonorsRetryAfter(t *testing.T) {
	var waited time.Duration
	backoff := func(attempt int) time.Duration { return 10 * time.Millisecond }
	start := time.Now()
	err := withRetry(context.Background(), 2, backoff, func(attempt int) error {
		if attempt == 1 {
			return markTransient(errors.New("throttled"), 50*time.Millisecond)
		}
		waited = time.Since(start)
		return nil
	})
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if waited < 50*time.Millisecond {
		t.Fatalf("retry-after must win over shorter backoff, waited %v", waited)
	}
}

func TestWithRetryCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := withRetry(ctx, 3, func(int) time.Duration { return time.Minute }, func(int) error {
		return markTransient(errors.New("down"), 0)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestExpBackoffGrowsAndCaps(t *testing.T) {
	if got := expBackoff(1); got != 2*time.Second {
		t.Fatalf("attempt 1: want 2s, got %v", got)
	}
	if got := expBackoff(2); got != 4*time.Second {
		t.Fatalf("attempt 2: want 4s, got %v", got)
	}
	if got := expBackoff(10); got != 30*time.Second {
		t.Fatalf("attempt 10: want 30s cap, got %v", got)
	}
}
