package handler

import (
	"errors"
	"net/http"

	"helpcenter/internal/domain"
	"helpcenter/internal/httputil"
)

// statusFromError maps domain errors to HTTP status codes
func statusFromError(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// errorDetail hides internal errors from clients
func errorDetail(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	httputil.RespondRequestError(w, r, status, errorDetail(status, err))
}
