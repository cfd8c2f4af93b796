package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgNotFound     = "order not found"
	msgAccessDenied = "not authorized to perform this action"
	msgConflict     = "order was changed by another request, reload it and retry"
	msgInternal     = "internal server error"
)

// statusFor maps an error kind to its HTTP status and client-facing message.
// Storage and unexpected failures never leak their cause.
func statusFor(err error) (int, string) {
	var transition *errs.StatusTransitionError
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest, strings.ReplaceAll(err.Error(), "\n", "; ")
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, msgAccessDenied
	case errors.As(err, &transition):
		return http.StatusConflict, transition.Reason
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict, msgConflict
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (s *Server) respondError(ctx echo.Context, err error) error {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.String("error", err.Error()),
		)
	}
	return ctx.JSON(status, errorResponse{Message: message})
}
