package service

import "errors"

// Service error taxonomy. Handlers map these to HTTP status codes:
// ErrValidation -> 400, ErrForbidden -> 403, ErrNotFound -> 404,
// ErrConflict -> 409; anything else is a 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
