package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested account or post does not exist
	ErrNotFound = errors.New("not found")

	// ErrServerOffline indicates the API endpoint is unreachable
	ErrServerOffline = errors.New("api endpoint is unreachable")

	// ErrAuthRequired indicates the operation needs an authenticated session
	ErrAuthRequired = errors.New("authentication required")

	// ErrSessionExpired indicates the stored session is no longer valid
	ErrSessionExpired = errors.New("session has expired")

	// ErrHandleUnknown indicates a username could not be resolved to an address
	ErrHandleUnknown = errors.New("username does not exist")
)
