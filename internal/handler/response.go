package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kfodor/askmate/internal/apperror"
)

// writeError maps a domain error onto an HTTP status. The service layer
// only knows the error taxonomy; the translation to status codes happens
// here and nowhere else.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		}
		http.Error(w, appErr.Message, status)
		return
	}

	// Unknown errors stay internal: log the detail, return a generic 500.
	logger.Error("internal error", slog.String("error", err.Error()))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
