package usecase

import "errors"

// Sentinel errors the HTTP layer maps to response statuses. Services wrap
// them with %w and a human-readable detail.
var (
	// ErrInvalidInput covers malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers lookups by an unknown public ID.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized covers missing or wrong API tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDependencyUnavailable covers vision or blobstore outages,
	// including an open circuit breaker.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
