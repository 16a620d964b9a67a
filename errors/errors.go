package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates unauthorized access attempt
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable indicates a required service is unavailable
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrAgentUnavailable indicates the remote agent router could not be reached
	// or returned a non-success status
	ErrAgentUnavailable = errors.New("agent service unavailable")

	// ErrDecodeResponse indicates the remote agent router returned a payload
	// that does not normalize to the expected shape
	ErrDecodeResponse = errors.New("malformed agent response")
)

// WrapError wraps an error with context message and stack
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAgentUnavailable checks if error is an agent availability error
func IsAgentUnavailable(err error) bool {
	return errors.Is(err, ErrAgentUnavailable)
}

// IsDecodeError checks if error is a response normalization error
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecodeResponse)
}
