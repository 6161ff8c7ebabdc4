// Package output provides structured output and error handling for the tsdl installer.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (missing artifact, bad flags)
// 2 = System error (mkdir, copy or chmod failed)
// 3 = Permission error (destination not writable and escalation ruled out)
//
// An elevated re-invocation that fails passes its own exit code through.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitPermission  = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: missing source artifact, unknown flag values.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewUserErrorWithCause creates a user error wrapping an underlying cause.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewPermissionError creates an error for an unwritable destination (exit code 3).
func NewPermissionError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitPermission,
		Message: message,
		Cause:   cause,
	}
}

// NewChildExitError reports a failed elevated re-invocation, keeping its exit code.
func NewChildExitError(message string, code int) *ExitError {
	if code <= 0 {
		code = ExitSystemError
	}
	return &ExitError{
		Code:    code,
		Message: message,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
