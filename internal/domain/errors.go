// Package domain defines the core types, interfaces, and errors of the
// group directory.
package domain

import "fmt"

// DuplicateNameError indicates a create attempted with a group name that
// already exists. Recoverable by the caller.
type DuplicateNameError struct {
	Message string
}

func (e *DuplicateNameError) Error() string { return e.Message }

// SerializationError indicates metadata could not be encoded or decoded.
// Encoding a flat string-to-string map is defined to always succeed, so
// hitting this on the write path is a programming error, not a retry case.
type SerializationError struct {
	Message string
	Err     error
}

func (e *SerializationError) Error() string { return e.Message }

func (e *SerializationError) Unwrap() error { return e.Err }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrDuplicateName creates a DuplicateNameError with a formatted message.
func ErrDuplicateName(format string, args ...interface{}) *DuplicateNameError {
	return &DuplicateNameError{Message: fmt.Sprintf(format, args...)}
}

// ErrSerialization creates a SerializationError wrapping the codec failure.
func ErrSerialization(err error, format string, args ...interface{}) *SerializationError {
	return &SerializationError{Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
