package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the caller is known but lacks the role or relationship required by the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the caller identity could not be established.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the resource is in a state that does not allow the requested change.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned for unexpected infrastructure failures.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-style status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the sentinel that corresponds to its code.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusConflict:
		return target == ErrConflict
	case http.StatusInternalServerError:
		return target == ErrInternal
	}
	return false
}

// NewNotFoundError creates a 404 AppError.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// NewValidationFailedError creates a 400 AppError.
func NewValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// NewForbiddenError creates a 403 AppError.
func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, nil)
}

// NewConflictError creates a 409 AppError.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, nil)
}
