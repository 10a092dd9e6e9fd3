package errors

import (
	"fmt"
)

// SetupError is the structured error type for mba-setup.
// It provides rich context for error handling, logging, and user presentation.
type SetupError struct {
	// Code is the unique error code (e.g., "ERR_301_PYTHON_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Filesystem, Interpreter, ...).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with SetupError.
func (e *SetupError) Is(target error) bool {
	if t, ok := target.(*SetupError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SetupError) WithDetail(key, value string) *SetupError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *SetupError) WithSuggestion(suggestion string) *SetupError {
	e.Suggestion = suggestion
	return e
}

// New creates a new SetupError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *SetupError {
	return &SetupError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a SetupError from an existing error.
// The error's message becomes the SetupError message.
func Wrap(code string, err error) *SetupError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SetupError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// FilesystemError creates a directory/dataset/manifest error.
func FilesystemError(code, message string, cause error) *SetupError {
	return New(code, message, cause)
}

// InterpreterError creates a Python toolchain error.
func InterpreterError(message string, cause error) *SetupError {
	return New(ErrCodePythonNotFound, message, cause)
}

// InstallerError creates a pip invocation error.
func InstallerError(message string, cause error) *SetupError {
	return New(ErrCodePipInstall, message, cause)
}

// GetCode extracts the error code from a SetupError.
// Returns empty string if not a SetupError.
func GetCode(err error) string {
	if se, ok := err.(*SetupError); ok {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from a SetupError.
// Returns empty string if not a SetupError.
func GetCategory(err error) Category {
	if se, ok := err.(*SetupError); ok {
		return se.Category
	}
	return ""
}

// IsWarning checks if an error has warning severity.
// Warnings are reported but never count against the overall result.
func IsWarning(err error) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*SetupError); ok {
		return se.Severity == SeverityWarning
	}
	return false
}
