package core

import "github.com/pkg/errors"

// FieldError attaches an error message to the input field that caused it.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports invalid input. Fields carries per-field messages
// for checks the struct validator cannot express, such as uniqueness or
// referential checks that need the service.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, fields ...FieldError) error {
	return &ValidationError{Err: err, Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// shutdownError signals an integrity problem the running process cannot
// recover from. The HTTP layer turns it into a graceful shutdown.
type shutdownError struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdownError{message: msg}
}

func (e *shutdownError) Error() string {
	return e.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdownError)
	return ok
}
