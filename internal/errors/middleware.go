package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPErrorsTotal counts failed requests by error category.
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error type",
		},
		[]string{"type"},
	)
)

// Middleware converts handler errors into categorized JSON responses and
// records them. Errors raised by echo's own middleware (CSRF, body limit)
// keep their native status and are only counted.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				HTTPErrorsTotal.WithLabelValues(string(typeForStatus(httpErr.Code))).Inc()
				return err
			}

			appErr := From(err)
			HTTPErrorsTotal.WithLabelValues(string(appErr.Type)).Inc()
			logError(c, appErr)

			if err := c.JSON(appErr.HTTPStatus(), appErr); err != nil {
				return fmt.Errorf("write error response: %w", err)
			}
			return nil
		}
	}
}

// typeForStatus categorizes an echo-native status code for the metric.
func typeForStatus(code int) ErrorType {
	switch {
	case code == http.StatusNotFound:
		return TypeNotFound
	case code >= 400 && code < 500:
		return TypeValidation
	case code == http.StatusBadGateway || code == http.StatusServiceUnavailable:
		return TypeExternal
	default:
		return TypeInternal
	}
}

// logError writes one log line per failed request: request coordinates,
// the error's structured fields, and the authenticated user when present.
func logError(c echo.Context, err *Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}
	for k, v := range err.Fields {
		attrs = append(attrs, k, v)
	}
	if userID := c.Get("userID"); userID != nil {
		attrs = append(attrs, "user_id", userID)
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause)
	}

	switch err.Type {
	case TypeValidation, TypeNotFound:
		slog.Info("Request rejected", attrs...)
	case TypeExternal:
		slog.Warn("Upstream call failed", attrs...)
	default:
		slog.Error("Request failed", attrs...)
	}
}
