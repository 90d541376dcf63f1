// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// ExtractionKind classifies terminal failures of the document pipeline.
type ExtractionKind string

const (
	// EmptyOrUnreadable means text extraction failed or yielded too little
	// text to be worth an LLM call.
	EmptyOrUnreadable ExtractionKind = "EMPTY_OR_UNREADABLE"
	// NoProviderConfigured means the requested LLM provider has no
	// credential; no network call was attempted.
	NoProviderConfigured ExtractionKind = "NO_PROVIDER_CONFIGURED"
	// ProviderFailure means the LLM call itself failed.
	ProviderFailure ExtractionKind = "PROVIDER_FAILURE"
	// MalformedResponse means the completion could not be parsed as JSON.
	MalformedResponse ExtractionKind = "MALFORMED_RESPONSE"
)

// ExtractionError is a terminal, per-request pipeline failure. It reports
// which stage failed so callers can render an actionable message. It is
// never retried inside the pipeline.
type ExtractionError struct {
	Kind    ExtractionKind
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction error [%s]: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("extraction error [%s]: %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(kind ExtractionKind, message string, err error) *ExtractionError {
	return &ExtractionError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ExtractionKindOf returns the extraction kind of err, or "" if err is not
// an ExtractionError.
func ExtractionKindOf(err error) ExtractionKind {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}

// ValidationError represents a validation error.
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
