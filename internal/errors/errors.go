package errors

import (
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeSetup      ErrorType = "setup"
	ErrorTypeDecode     ErrorType = "decode"
	ErrorTypeInference  ErrorType = "inference"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type     ErrorType
	Message  string
	ExitCode int
	Cause    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewSetupError creates an error for failures that abort the run before any
// scanning starts, such as a missing model file. Setup errors carry a
// non-zero exit code.
func NewSetupError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeSetup,
		Message:  message,
		ExitCode: 1,
		Cause:    cause,
	}
}

// NewDecodeError creates an error for an image that could not be decoded.
// Decode errors are recoverable: the scan counts them and moves on.
func NewDecodeError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeDecode,
		Message:  message,
		ExitCode: 0,
		Cause:    cause,
	}
}

// NewInferenceError creates an error for a failed inference call on a single
// image. Like decode errors these are recoverable per-file errors.
func NewInferenceError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeInference,
		Message:  message,
		ExitCode: 0,
		Cause:    cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeValidation,
		Message:  message,
		ExitCode: 2,
		Cause:    cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeNotFound,
		Message:  message,
		ExitCode: 1,
		Cause:    cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeInternal,
		Message:  message,
		ExitCode: 1,
		Cause:    cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// IsRecoverable reports whether the scan may continue past this error.
// Setup and validation errors are fatal; everything tied to a single file
// is not.
func IsRecoverable(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeDecode || appErr.Type == ErrorTypeInference
	}
	return false
}

// GetExitCode extracts the process exit code from an error
func GetExitCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.ExitCode
	}
	return 1
}
