// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrTradeClosed   = errors.New("trade already closed")
	ErrEmptyImport   = errors.New("no valid trades found")
	ErrPersistence   = errors.New("failed to persist ledger")
	ErrKeyNotFound   = errors.New("key not found")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// ValidationError represents a validation error on user-supplied trade input.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// FormatError represents a CSV document that cannot be decoded at all.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("format error: %s", e.Message)
}

// NewFormatError creates a new FormatError.
func NewFormatError(line int, message string) *FormatError {
	return &FormatError{Line: line, Message: message}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
