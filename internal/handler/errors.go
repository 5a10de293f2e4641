package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/readmate/readmate/internal/repository"
	"github.com/readmate/readmate/internal/service"
	"github.com/readmate/readmate/internal/validation"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, repository.ErrBookNotFound),
		errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrGoalProgressNotFound),
		errors.Is(err, service.ErrNoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, service.ErrInvalidBookStatus),
		errors.Is(err, service.ErrInvalidGoalStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Only unexpected errors are
// logged; msg is shown to the client in that case.
func writeError(w http.ResponseWriter, err error, msg string, args ...any) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(msg, append([]any{"error", err}, args...)...)
		http.Error(w, msg, status)
		return
	}
	http.Error(w, err.Error(), status)
}
