package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries the HTTP status and the client-visible message for a failure.
// Err holds the underlying cause and is only ever logged.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
	}
}

// Wrap returns a copy of e with err attached as the cause.
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{
		Status:  e.Status,
		Message: e.Message,
		Err:     err,
	}
}

// Is reports whether err is, or wraps, an AppError with the same status and message as target.
func Is(err error, target *AppError) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status == target.Status && appErr.Message == target.Message
	}
	return false
}

// StatusOf returns the HTTP status for err, 500 when err is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-visible message for err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// Request errors.
var (
	ErrMissingParameter = New(http.StatusBadRequest, "Missing uid or region")
	ErrUnauthorized     = New(http.StatusForbidden, "Invalid or missing API key")
)

// Upstream errors. Player info and background failures abort the request,
// ErrLayerUnavailable only ever drops a single layer from the composite.
var (
	ErrUpstreamUnavailable   = New(http.StatusInternalServerError, "Failed to fetch player info")
	ErrBackgroundUnavailable = New(http.StatusInternalServerError, "Failed to fetch background image")
	ErrLayerUnavailable      = New(http.StatusBadGateway, "Failed to fetch layer image")
	ErrEncodeFailed          = New(http.StatusInternalServerError, "Failed to encode image")
)
