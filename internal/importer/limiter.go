package importer

// limiter.go bounds concurrent commit runs with a semaphore so a burst of
// large imports cannot exhaust the process. Requests that cannot get a
// slot within the wait window are rejected with ErrTooManyImports and the
// client retries later.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyImports is returned when all import slots are occupied and
// the wait timeout expires.
var ErrTooManyImports = errors.New("demasiadas importaciones simultáneas, intente de nuevo más tarde")

const (
	// DefaultMaxConcurrentImports is the default limit for parallel commits.
	DefaultMaxConcurrentImports = 4

	// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
	DefaultMaxWaitTime = 10 * time.Second
)

// Limiter controls concurrent commit processing.
type Limiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.Mutex
	active int
}

// NewLimiter creates a limiter allowing at most maxConcurrent simultaneous
// commits. Non-positive arguments fall back to the defaults.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &Limiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire obtains an import slot, waiting up to the configured timeout.
// The caller must Release the slot when the run completes.
func (l *Limiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyImports
	}
}

// Release frees a previously acquired slot.
func (l *Limiter) Release() {
	select {
	case <-l.semaphore:
		l.mu.Lock()
		l.active--
		l.mu.Unlock()
	default:
		// Release without Acquire is a programming error; ignore rather
		// than block.
	}
}

// Active returns the number of commits currently holding a slot.
func (l *Limiter) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}
