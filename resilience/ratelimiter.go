package resilience

import (
	"context"
	"sync"
	"time"
)

// Limiter is the admission gate contract shared by every rate-limiting
// flavour in this package. TryAcquire is non-blocking; Acquire blocks
// until admission or ctx is done. Release returns an admission slot for
// flavours that model one (SemaphoreLimiter); for the others it is a
// no-op, so callers can pair every successful acquire with a deferred
// Release unconditionally.
type Limiter interface {
	TryAcquire() bool
	Acquire(ctx context.Context) error
	Release()
}

// RateLimiter is a token bucket: Capacity tokens available at once,
// refilled continuously at FillRate tokens/second. Refill happens lazily
// on each call rather than on a background ticker.
type RateLimiter struct {
	mu         sync.Mutex
	capacity   float64
	fillRate   float64
	available  float64
	lastRefill time.Time
}

// NewRateLimiter creates a bucket starting full.
func NewRateLimiter(capacity int64, fillRatePerSecond float64) *RateLimiter {
	return &RateLimiter{
		capacity:   float64(capacity),
		fillRate:   fillRatePerSecond,
		available:  float64(capacity),
		lastRefill: time.Now(),
	}
}

func (r *RateLimiter) refillLocked(now time.Time) {
	elapsed := now.Sub(r.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	r.available = minFloat(r.capacity, r.available+elapsed*r.fillRate)
	r.lastRefill = now
}

// TryAcquire attempts to consume one token immediately and reports
// whether it succeeded, without blocking.
func (r *RateLimiter) TryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refillLocked(time.Now())
	if r.available < 1 {
		return false
	}
	r.available--
	return true
}

// Acquire blocks until a token is available or ctx is done, whichever
// comes first.
func (r *RateLimiter) Acquire(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		r.refillLocked(now)
		if r.available >= 1 {
			r.available--
			r.mu.Unlock()
			return nil
		}
		shortfall := 1 - r.available
		wait := time.Duration(shortfall / r.fillRate * float64(time.Second))
		r.mu.Unlock()

		if wait <= 0 {
			wait = time.Millisecond
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ErrRateLimitDenied
		case <-timer.C:
		}
	}
}

// Release is a no-op: consumed tokens come back through refill, not
// through the caller returning them.
func (r *RateLimiter) Release() {}

// FixedWindowLimiter admits at most Limit acquisitions per Window; the
// counter resets when a new window starts. Unlike the token bucket there
// is no smoothing — a full window's allowance can be consumed in a
// burst at the window edge.
type FixedWindowLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	count       int
}

// NewFixedWindowLimiter creates a limiter admitting limit acquisitions
// per window.
func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:       limit,
		window:      window,
		windowStart: time.Now(),
	}
}

func (f *FixedWindowLimiter) tryAcquireAt(now time.Time) (ok bool, retryIn time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if elapsed := now.Sub(f.windowStart); elapsed >= f.window {
		f.windowStart = now
		f.count = 0
	}
	if f.count < f.limit {
		f.count++
		return true, 0
	}
	return false, f.windowStart.Add(f.window).Sub(now)
}

// TryAcquire admits if the current window has allowance left.
func (f *FixedWindowLimiter) TryAcquire() bool {
	ok, _ := f.tryAcquireAt(time.Now())
	return ok
}

// Acquire blocks until the next window opens or ctx is done.
func (f *FixedWindowLimiter) Acquire(ctx context.Context) error {
	for {
		ok, retryIn := f.tryAcquireAt(time.Now())
		if ok {
			return nil
		}
		if retryIn <= 0 {
			retryIn = time.Millisecond
		}
		timer := time.NewTimer(retryIn)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ErrRateLimitDenied
		case <-timer.C:
		}
	}
}

// Release is a no-op: a fixed window never returns allowance early.
func (f *FixedWindowLimiter) Release() {}

// SemaphoreLimiter bounds in-flight executions rather than rate: at most
// Capacity holders at once, each returning its slot with Release. It is
// the only flavour where Release is meaningful.
type SemaphoreLimiter struct {
	slots chan struct{}
}

// NewSemaphoreLimiter creates a semaphore with capacity slots.
func NewSemaphoreLimiter(capacity int) *SemaphoreLimiter {
	return &SemaphoreLimiter{slots: make(chan struct{}, capacity)}
}

// TryAcquire takes a slot if one is free, without blocking.
func (s *SemaphoreLimiter) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Acquire blocks until a slot frees up or ctx is done.
func (s *SemaphoreLimiter) Acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ErrRateLimitDenied
	}
}

// Release returns a previously acquired slot. Releasing without a
// matching acquire is a caller bug; the extra slot is dropped rather
// than growing capacity.
func (s *SemaphoreLimiter) Release() {
	select {
	case <-s.slots:
	default:
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
