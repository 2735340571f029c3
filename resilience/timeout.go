package resilience

import "time"

// TimeoutPolicy bounds the wall-clock duration of a single execution
// attempt. The zero value (NoTimeout) applies no bound. A TimeoutPolicy
// governs one attempt, not the whole retry loop: a TaskWorkflow with
// MaxAttempts=3 and a 100ms timeout may run for up to 300ms plus
// backoff before it reports its final result.
type TimeoutPolicy struct {
	Limit time.Duration
}

// NoTimeout applies no per-attempt bound.
var NoTimeout = TimeoutPolicy{}

// TimeoutOfMillis bounds each attempt to n milliseconds.
func TimeoutOfMillis(n int64) TimeoutPolicy {
	return TimeoutPolicy{Limit: time.Duration(n) * time.Millisecond}
}

// TimeoutOfSeconds bounds each attempt to n seconds.
func TimeoutOfSeconds(n int64) TimeoutPolicy {
	return TimeoutPolicy{Limit: time.Duration(n) * time.Second}
}

// Enabled reports whether the policy actually bounds execution.
func (p TimeoutPolicy) Enabled() bool {
	return p.Limit > 0
}
