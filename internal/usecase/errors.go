package usecase

import "errors"

// Sentinel errors returned by the services. Callers wrap them with detail
// via fmt.Errorf("%w: ...") and the HTTP layer maps each to one status.
var (
	// ErrUnauthenticated means no caller could be resolved from the request.
	ErrUnauthenticated = errors.New("must be logged in")
	// ErrUnauthorized means the caller is known but lacks the role.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrCapacity     = errors.New("league is full")
	ErrConflict     = errors.New("conflict")
	// ErrPrecondition covers lifecycle violations, e.g. picking after the
	// draft completed or editing a started league.
	ErrPrecondition = errors.New("precondition failed")
	ErrNotFound     = errors.New("resource not found")
	// ErrDependencyUnavailable wraps failures of the store or the account
	// service that a retry may clear.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
