package util

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryankumar/parex/pkg/parex"
)

// Common error types for the parex CLI
var (
	// ErrInvalidConfig indicates a configuration error
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTimeout indicates a run timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCancelled indicates a run was cancelled
	ErrCancelled = errors.New("operation cancelled")
)

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:", len(m.Errors)))
	for i, err := range m.Errors {
		if i < 10 { // Limit to first 10 errors in the message
			sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
		} else if i == 10 {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more errors", len(m.Errors)-10))
			break
		}
	}
	return sb.String()
}

// Unwrap returns the errors for errors.Is/As compatibility
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add adds an error to the multi-error
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// ErrorOrNil returns nil if no errors were added, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// ValidationError represents an invalid flag or config value
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	if v.Value != nil {
		return fmt.Sprintf("validation failed for field %q (value: %v): %s", v.Field, v.Value, v.Message)
	}
	return fmt.Sprintf("validation failed for field %q: %s", v.Field, v.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match validation failures
func (v *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// IsCancelled checks if an error is a cancellation error
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// FriendlyError converts technical errors to user-friendly messages
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case IsTimeout(err):
		return "Run timed out. Partial results were printed; increase the limit with the --timeout flag."
	case IsCancelled(err):
		return "Run was cancelled."
	case errors.Is(err, ErrInvalidConfig):
		return fmt.Sprintf("Invalid configuration: %v. Please check your config file and command-line flags.", err)
	}

	var pe *parex.Error
	if !errors.As(err, &pe) {
		return err.Error()
	}

	switch pe.Code {
	case parex.CodeInvalidPattern:
		return fmt.Sprintf("Invalid pattern %q: %v. Please check the --regex or --expr value.", pe.Detail, pe.Err)
	case parex.CodeInvalidThreadCount:
		return fmt.Sprintf("Invalid thread count %s. Use --threads with a value of at least 1.", pe.Detail)
	case parex.CodeInvalidSource:
		return fmt.Sprintf("Cannot read the source: %v. Please check the path, kubeconfig or database settings.", pe)
	case parex.CodePermissionDenied:
		return fmt.Sprintf("Permission denied: %v. Please check your credentials and permissions.", pe)
	case parex.CodeThreadPool:
		return fmt.Sprintf("Worker pool failed: %v.", pe)
	default:
		return pe.Error()
	}
}

// CombineErrors combines multiple errors into a single error
// Returns nil if all errors are nil
func CombineErrors(errs ...error) error {
	m := &MultiError{}
	for _, err := range errs {
		m.Add(err)
	}
	return m.ErrorOrNil()
}

// WrapErrorf wraps an error with a formatted message
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
