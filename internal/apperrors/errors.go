// Package apperrors defines the sentinel errors shared by services and handlers.
// Repositories and services wrap these with %w so the HTTP layer can map every
// failure to a status code in one place.
package apperrors

import "errors"

var (
	// ErrNotFound signals that a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict signals that the operation clashes with existing state
	ErrConflict = errors.New("conflict")
	// ErrValidation signals that the input failed validation
	ErrValidation = errors.New("validation failed")
	// ErrForbidden signals that the caller is not allowed to perform the operation
	ErrForbidden = errors.New("forbidden")
)
