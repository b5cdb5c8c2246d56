// Sentinel errors shared by client layers. Callers should match them with
// errors.Is.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// transport / service level errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrUnavailable    = errors.New("server unavailable")

	// validation errors
	ErrorValidation  = errors.New("validation error")
	ErrorInvalidRole = errors.New("invalid role")
)
