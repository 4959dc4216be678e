package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrUnavailable marks the store as missing or unreachable; callers
	// translate it to a retryable 503.
	ErrUnavailable = errors.New("skills store unavailable")
)
