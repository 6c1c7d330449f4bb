package services

import "errors"

// Error kinds surfaced to the HTTP layer. Match them with errors.Is; callers
// wrap them with context using %w.
var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrLoginFailure    = errors.New("invalid email or password")
	ErrNotFound        = errors.New("not found")
	ErrConsistency     = errors.New("inconsistent hierarchy")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInterest = errors.New("invalid interest field")
)
