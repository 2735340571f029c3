package scheduling

import "errors"

// ErrPoolStopped is returned by Submit once Stop has been called.
var ErrPoolStopped = errors.New("scheduling: pool is stopped")
