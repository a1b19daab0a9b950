// Package errors defines the application error taxonomy. Field-level parse
// failures never surface here — parsers return empty cells. AppError covers
// the conditions that abort a run: bad configuration, unreadable input,
// missing required columns, the strict-mode gate, and artifact write failures.
package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewParsingError creates a parsing-related error (unreadable workbook, not
// a dirty cell value)
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewSchemaError creates an error for required columns missing after
// canonicalization
func NewSchemaError(message string) *AppError {
	return NewAppError(ErrTypeSchema, message, nil)
}

// NewValidationError creates a validation error (the strict-mode gate)
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates an artifact write error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// IsType checks whether err is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errType
	}
	return false
}
