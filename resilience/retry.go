package resilience

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy decides whether a failed attempt should be retried and how
// long to wait before the next one. MaxAttempts counts total tries,
// including the first: MaxAttempts=3 means at most two retries.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffStrategy
	// RetryableErr filters which errors are worth retrying. A nil
	// RetryableErr retries on any non-nil error.
	RetryableErr func(err error) bool
}

// None never retries: one attempt, whatever the outcome.
func None() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

// LimitedRetries retries up to max additional attempts on any failure,
// with exponential backoff. LimitedRetries(2) makes at most 3 tries.
func LimitedRetries(max int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: max + 1,
		Backoff:     ExponentialBackoff{BaseDelayMs: 100, MaxDelayMs: 10_000, Jitter: true},
	}
}

// LimitedRetriesOn is LimitedRetries restricted to failures matching one
// of the given error kinds (compared with errors.Is).
func LimitedRetriesOn(max int, kinds ...error) RetryPolicy {
	p := LimitedRetries(max)
	p.RetryableErr = func(err error) bool {
		for _, kind := range kinds {
			if errors.Is(err, kind) {
				return true
			}
		}
		return false
	}
	return p
}

// ShouldRetry reports whether another attempt should be made after a
// failure at attempt (1-based: the attempt that just failed).
func (p RetryPolicy) ShouldRetry(attempt int, err error) bool {
	if err == nil {
		return false
	}
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		return false
	}
	if p.RetryableErr != nil && !p.RetryableErr(err) {
		return false
	}
	return true
}

// ComputeDelayMs returns the backoff delay before the attempt following
// the one that just failed. A nil Backoff means no delay.
func (p RetryPolicy) ComputeDelayMs(attempt int) int64 {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff.ComputeDelayMs(attempt)
}

// Do runs fn up to p.MaxAttempts times, sleeping between attempts per the
// configured Backoff, and returns the last result along with the number
// of attempts made. It stops early if ctx is done.
func Do[T any](ctx context.Context, p RetryPolicy, fn func(attempt int) (T, error)) (T, int, error) {
	var zero T
	var lastErr error
	attempts := 0
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt
		v, err := fn(attempt)
		if err == nil {
			return v, attempts, nil
		}
		lastErr = err
		if !p.ShouldRetry(attempt, err) {
			break
		}
		delay := delayDuration(p.ComputeDelayMs(attempt))
		if delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return zero, attempts, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, attempts, lastErr
}
