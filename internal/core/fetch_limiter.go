package core

// fetch_limiter.go bounds the number of upstream catalog fetches in flight.
//
// Every cache miss costs one request to the spreadsheet host. Under a burst
// of traffic the limiter queues requests for a free slot for up to maxWait
// and then fails them with ErrTooManyFetches, so a slow upstream cannot pile
// up unbounded goroutines.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyFetches is returned when no fetch slot frees up in time.
var ErrTooManyFetches = errors.New("too many concurrent catalog fetches")

// DefaultMaxConcurrentFetches is used when the configured limit is not positive.
const DefaultMaxConcurrentFetches = 4

// DefaultFetchWait is used when the configured wait is not positive.
const DefaultFetchWait = 10 * time.Second

// FetchLimiter is a semaphore over upstream fetches.
type FetchLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewFetchLimiter allows at most maxConcurrent fetches at once.
func NewFetchLimiter(maxConcurrent int, maxWait time.Duration) *FetchLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentFetches
	}
	if maxWait <= 0 {
		maxWait = DefaultFetchWait
	}
	return &FetchLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. It returns ctx's error when ctx ends first and
// ErrTooManyFetches when maxWait elapses. Callers must Release a slot they
// acquired.
func (l *FetchLimiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	default:
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyFetches
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *FetchLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *FetchLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// ActiveCount returns the number of fetches holding a slot.
func (l *FetchLimiter) ActiveCount() int {
	return int(l.active.Load())
}

// WaitForDrain blocks until no fetch holds a slot or ctx ends. Used on
// shutdown so in-flight fetches can finish writing the cache.
func (l *FetchLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.ActiveCount() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// FetchLimiterStatus is a snapshot of the limiter for health output.
type FetchLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *FetchLimiter) Status() FetchLimiterStatus {
	return FetchLimiterStatus{
		Active:        l.ActiveCount(),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
