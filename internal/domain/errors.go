package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Error carries a client-facing message and unwraps to one of the sentinel kinds.
type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.kind
}

func NewValidationError(message string) error {
	return &Error{kind: ErrValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{kind: ErrNotFound, Message: message}
}
