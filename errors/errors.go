package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the custom error type carried through the application.
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// AsAppError extracts an AppError from an error chain, if present.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return AppError{}, false
}

// CodeOf returns the error code of err, or ErrorCode_INTERNAL when err is
// not an AppError.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrorCode_INTERNAL
}

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

// ErrInvalidArgument covers missing required workflow inputs and empty
// patches; it is surfaced before any side effect is performed.
func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// ErrProviderUnavailable marks a failed call to the room provider or the
// summarizer. The step detail tells the caller which workflow step died.
func ErrProviderUnavailable(provider, step string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PROVIDER_UNAVAILABLE,
		Message:  fmt.Sprintf("%s call failed", provider),
	}.WithDetail("step", step)
}

// ErrStorageFailure marks a failed record-store write or read. Records
// written by earlier steps stay in the store; the step detail supports
// manual reconciliation.
func ErrStorageFailure(step string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILURE,
		Message:  "Storage operation failed",
	}.WithDetail("step", step)
}
