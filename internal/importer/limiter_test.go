package importer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiter_AcquireRelease(t *testing.T) {
	l := NewLimiter(2, time.Second)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire error = %v", err)
	}
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire error = %v", err)
	}
	if got := l.Active(); got != 2 {
		t.Errorf("Active() = %d, want 2", got)
	}

	l.Release()
	l.Release()
	if got := l.Active(); got != 0 {
		t.Errorf("Active() after release = %d, want 0", got)
	}
}

func TestLimiter_ExhaustedSlotsReject(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}
	defer l.Release()

	err := l.Acquire(ctx)
	if !errors.Is(err, ErrTooManyImports) {
		t.Fatalf("Acquire on full limiter = %v, want ErrTooManyImports", err)
	}
}

func TestLimiter_SlotReusableAfterRelease(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}
	l.Release()

	if err := l.Acquire(ctx); err != nil {
		t.Errorf("Acquire after Release error = %v", err)
	}
	l.Release()
}

func TestLimiter_CancelledContext(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Acquire(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Acquire with cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestLimiter_ExtraReleaseIsHarmless(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)

	l.Release()
	if got := l.Active(); got != 0 {
		t.Errorf("Active() = %d, want 0", got)
	}

	if err := l.Acquire(context.Background()); err != nil {
		t.Errorf("Acquire after stray Release error = %v", err)
	}
}

func TestNewLimiter_Defaults(t *testing.T) {
	l := NewLimiter(0, 0)

	if cap(l.semaphore) != DefaultMaxConcurrentImports {
		t.Errorf("capacity = %d, want %d", cap(l.semaphore), DefaultMaxConcurrentImports)
	}
	if l.maxWait != DefaultMaxWaitTime {
		t.Errorf("maxWait = %v, want %v", l.maxWait, DefaultMaxWaitTime)
	}
}
