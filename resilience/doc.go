// Package resilience provides the retry, backoff, timeout, and
// rate-limiting primitives consumed by workflow.TaskWorkflow and
// workflow.RateLimitedWorkflow.
//
// RetryPolicy pairs an attempt budget with a BackoffStrategy (constant,
// linear, or jittered exponential); TimeoutPolicy bounds a single
// attempt. The Limiter flavours — token bucket, fixed window, and
// semaphore — share one acquire/try-acquire/release contract so a
// RateLimitedWorkflow works against any of them.
package resilience
