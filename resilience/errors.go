package resilience

import "errors"

// ErrRateLimitDenied is returned by a Limiter's Acquire when ctx is
// done before admission is granted.
var ErrRateLimitDenied = errors.New("resilience: rate limit denied admission before context deadline")
