package adapter

import "errors"

// Sentinel errors mapped from remote tracker responses. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnauthorized indicates the access token was rejected (401/403).
	ErrUnauthorized = errors.New("remote tracker rejected credentials")

	// ErrNotFound indicates the addressed remote resource does not exist.
	// Fetch translates this into a nil snapshot; Update surfaces it so a
	// push against a deleted issue fails loudly.
	ErrNotFound = errors.New("remote issue not found")
)
