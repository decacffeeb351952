package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("duplicate")
	ErrInvalidInput    = errors.New("invalid input")
	ErrVersionConflict = errors.New("version conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrNotConfigured   = errors.New("not configured")
)
