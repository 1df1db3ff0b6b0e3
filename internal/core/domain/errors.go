package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrInvalidInput indicates the input is invalid (empty or missing message)
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates the client exceeded its request window
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream indicates an embedding or generation provider call failed.
	// The wrapped detail is logged server-side, never sent to production clients.
	ErrUpstream = errors.New("upstream provider failure")
)
