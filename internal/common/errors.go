// Package common defines shared constants and sentinel errors used across
// TaskManager layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound is also what the ownership
	// guard returns for a task owned by somebody else, so "missing" and
	// "not yours" are indistinguishable to callers.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorValidation         = errors.New("validation error")
	ErrorDuplicateEmail     = errors.New("email already registered")
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorUnauthenticated    = errors.New("unauthenticated")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
)
