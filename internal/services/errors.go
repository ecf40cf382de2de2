package services

import (
	"errors"
	"net/http"
)

// Workflow failure classes. Services wrap these with context via
// fmt.Errorf("%w: ..."), handlers map them to HTTP statuses.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("insufficient permissions")
	ErrUnavailable = errors.New("unavailable")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
)

// HTTPStatus maps a workflow error to the status code a handler should
// respond with. Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
