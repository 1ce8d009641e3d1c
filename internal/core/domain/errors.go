package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// On a single-repository lookup this is a valid outcome (record
	// absent), not a system fault.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Upstream Errors.

	// ErrAuthExpired indicates the GitHub credentials are invalid or
	// expired. Never retried locally; callers force re-authentication.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrRateLimited indicates the API rate limit was exceeded.
	// Carried by RateLimitError together with the reset time.
	ErrRateLimited = errors.New("rate limited")

	// ErrForbidden indicates access to the resource is forbidden for
	// reasons other than rate limiting.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidQuery indicates the search query was rejected upstream.
	// Surfaced as a user-correctable validation message.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUpstream indicates an unclassified non-2xx upstream response.
	ErrUpstream = errors.New("upstream error")

	// ErrNetwork indicates a transport-level failure before any
	// response was received, including transport timeouts.
	ErrNetwork = errors.New("network error")

	// ErrSuperseded indicates the operation was cancelled because a
	// newer operation of the same kind replaced it. Results carrying
	// this error are discarded silently and must never surface as a
	// user-facing failure.
	ErrSuperseded = errors.New("superseded by newer request")

	// ErrNoToken indicates no GitHub token is configured.
	ErrNoToken = errors.New("no token configured")
)
