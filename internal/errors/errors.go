// Package errors defines the dashboard's structured error model. Every
// handler failure carries a category, a client-safe message, and key-value
// fields that flow into both the error log and the JSON response.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes a failure for status mapping and metrics.
type ErrorType string

const (
	TypeValidation ErrorType = "validation"
	TypeNotFound   ErrorType = "not_found"
	TypeInternal   ErrorType = "internal"
	TypeExternal   ErrorType = "external"
)

var httpStatusByType = map[ErrorType]int{
	TypeValidation: http.StatusBadRequest,
	TypeNotFound:   http.StatusNotFound,
	TypeInternal:   http.StatusInternalServerError,
	TypeExternal:   http.StatusBadGateway,
}

// Error is a categorized failure. Fields hold domain identifiers
// (guild_id, user_id, streamer) for the log line and the client response;
// the cause is logged server-side and never serialized.
type Error struct {
	Type    ErrorType      `json:"type"`
	Message string         `json:"error"`
	Fields  map[string]any `json:"fields,omitempty"`
	Cause   error          `json:"-"`
}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause, Fields: map[string]any{}}
}

// ValidationError reports invalid client input.
func ValidationError(message string) *Error { return newError(TypeValidation, message, nil) }

// NotFoundError reports a record that does not exist.
func NotFoundError(message string) *Error { return newError(TypeNotFound, message, nil) }

// InternalError reports a server-side failure.
func InternalError(message string, cause error) *Error {
	return newError(TypeInternal, message, cause)
}

// ExternalError reports a failed call to Discord or Twitch.
func ExternalError(message string, cause error) *Error {
	return newError(TypeExternal, message, cause)
}

// WithField attaches one structured field. Chainable.
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	e.Fields[key] = value
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus maps the category to the response status code. Unknown
// categories are treated as internal.
func (e *Error) HTTPStatus() int {
	if status, ok := httpStatusByType[e.Type]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// From normalizes any error into a categorized one. An uncategorized error
// becomes an internal error with a generic client message, so the original
// text never leaks to the response.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError("internal server error", err)
}
