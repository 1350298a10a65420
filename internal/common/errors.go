package common

import (
	"errors"
	"net/http"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// NewValidationError builds a sentinel reported as 422 Unprocessable Entity.
func NewValidationError(code, message string) *AppError {
	return NewAppError(code, message, http.StatusUnprocessableEntity, nil)
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// ErrorCode returns the code of the first AppError in the chain, "OK" for nil
// and "INTERNAL" for anything else. Used as a low-cardinality metric label.
func ErrorCode(err error) string {
	if err == nil {
		return "OK"
	}
	var target *AppError
	if errors.As(err, &target) && target.Code != "" {
		return target.Code
	}
	return "INTERNAL"
}
