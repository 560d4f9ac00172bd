// internal/services/errors.go
package services

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP statuses:
// ErrNotFound -> 404, ErrConflict -> 409, ErrForbidden -> 403, rest -> 500.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)
