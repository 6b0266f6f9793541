package internal

import "errors"

var (
	// ErrPermissionDenied is returned when the acting user does not own
	// the item being mutated.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when an item or user does not exist.
	ErrNotFound = errors.New("not found")
)

// AppError is the error shape carried in API responses.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
