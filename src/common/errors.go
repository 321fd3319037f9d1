package common

import (
	"errors"
	"net/http"
)

// Business-rule failures, detected synchronously at the point of
// violation. Handlers translate them with ErrorStatus.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("operation not permitted")
	ErrInvalidTimeRange = errors.New("invalid booking time range")
	ErrUnavailable      = errors.New("item is not available")
	ErrConflictState    = errors.New("conflicting state")
	ErrInvalidArgument  = errors.New("invalid request argument")
)

func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrConflictState):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
