package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// statusFor maps the error taxonomy onto HTTP status codes. Anything outside the
// taxonomy is a 500.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrBusinessRuleViolation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the mapped status. Internal errors are logged in full and
// answered with a generic message.
func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(code, servers.Error{Code: code, Message: internalErrorMessage})
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: err.Error()})
}

// NewHTTPErrorHandler renders errors that escape handlers, such as echo's own 404/405
// and parameter binding failures, in the same shape as handler errors.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code := he.Code
			message := http.StatusText(code)
			if msg, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
				message = msg
			}
			if code >= http.StatusInternalServerError {
				logger.ErrorContext(ctx.Request().Context(), "Request failed", "error", err)
				message = internalErrorMessage
			}
			_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
			return
		}

		_ = writeError(ctx, logger, err)
	}
}
