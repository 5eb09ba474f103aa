package error

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	// An identity, mail, storage or search provider call failed
	ErrExternalService = errors.New("external service failure")
	// Every numeric suffix for a slug base is taken
	ErrSlugExhausted = errors.New("slug candidates exhausted")
	// Photo storage backend not configured
	ErrNotConfigured = errors.New("not configured")

	ErrTypeAssertMismatch = errors.New("type assertion mismatch")
)
