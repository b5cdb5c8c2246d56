package api

import (
	"fmt"
	"net/http"

	"github.com/visahq/visadesk/internal/common"
)

// Error is a backend error response. Message is the backend's own payload,
// forwarded without interpretation so the caller can present it.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Unwrap maps the HTTP status onto a sentinel so callers can branch with
// errors.Is without looking at status codes.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case e.Status == http.StatusForbidden:
		return common.ErrorForbidden
	case e.Status == http.StatusNotFound:
		return common.ErrorNotFound
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return common.ErrorValidation
	case e.Status >= 500:
		return common.ErrorInternal
	}
	return nil
}
