package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()
	retrier := NewDefaultRetrier()

	counter := 0
	err := retrier.Do(context.Background(), func() error {
		counter++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	cfg := NewFixedConfig(2, time.Millisecond)
	retrier := NewRetrier(cfg)

	counter := 0
	err := retrier.Do(context.Background(), func() error {
		counter++
		if counter < 2 {
			return errors.New("temporary error")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 2 {
		t.Errorf("expected 2 attempts, got %d", counter)
	}
}

func TestRetry_MaxRetriesExceeded(t *testing.T) {
	t.Parallel()
	retrier := NewRetrier(NewFixedConfig(2, time.Millisecond))

	expectedErr := errors.New("permanent error")
	counter := 0
	err := retrier.Do(context.Background(), func() error {
		counter++
		return expectedErr
	})
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	if counter != 3 { // initial try + 2 retries
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewRetrier(NewFixedConfig(3, 50*time.Millisecond))

	err := retrier.Do(ctx, func() error {
		cancel()
		return errors.New("operation error after cancel")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_FixedDelayIsConstant(t *testing.T) {
	t.Parallel()
	cfg := NewFixedConfig(2, 40*time.Millisecond)
	retrier := NewRetrier(cfg)

	start := time.Now()
	counter := 0
	_ = retrier.Do(context.Background(), func() error {
		counter++
		return errors.New("error")
	})
	elapsed := time.Since(start)

	if counter != 3 {
		t.Fatalf("expected 3 attempts, got %d", counter)
	}
	// Two sleeps of exactly 40ms each (no jitter, factor 1.0).
	if elapsed < 80*time.Millisecond || elapsed > 200*time.Millisecond {
		t.Errorf("expected ~80ms of total delay, got %v", elapsed)
	}
}
