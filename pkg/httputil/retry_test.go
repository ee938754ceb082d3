package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("not found")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("err = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on permanent errors)", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	transient := errors.New("still down")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: transient}
	})
	if !errors.Is(err, transient) {
		t.Fatalf("err = %v, want %v", err, transient)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 5, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	wrapped := &RetryableError{Err: inner}

	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is should see through RetryableError")
	}
	if wrapped.Error() != "inner" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "inner")
	}
}
