// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes
// with errors.Is. Keeping the taxonomy here (not in the handler package)
// means the service layer never has to know about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AppError pairs a sentinel (for errors.Is dispatch) with a human-readable
// message that is safe to put in a response body.
type AppError struct {
	Err     error  // sentinel category
	Message string // human-readable detail, returned to the client
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound builds a not-found error for a resource.
// HTTP handlers map this to 404.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

// ValidationFailed builds a client-input error. HTTP handlers map this to
// 400. The message may embed underlying fault text verbatim — the admin
// query route leans on that deliberately.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict builds a uniqueness-violation error.
//
// NOTE ON STATUS CODE:
// This API reports duplicate registration as 400 (that is the published
// contract), so the handler layer maps ErrConflict to 400, not 409.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized builds an authentication error (bad credentials, missing or
// invalid token). HTTP handlers map this to 401.
//
// Login failures for unknown usernames and wrong passwords use the SAME
// message so the endpoint cannot be used as a user-existence oracle.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden builds an authorization error — the caller is authenticated but
// lacks permission. HTTP handlers map this to 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
