package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Module errors
	ErrModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
	ErrDetection      ErrorCode = "DETECTION"
	ErrCommandFailed  ErrorCode = "COMMAND_FAILED"
	ErrPrompt         ErrorCode = "PROMPT"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileParse  ErrorCode = "FILE_PARSE"
)

// TunaError represents a structured error with code and details
type TunaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TunaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TunaError) Unwrap() error {
	return e.Wrapped
}

// Is matches any TunaError carrying the same code
func (e *TunaError) Is(target error) bool {
	var targetErr *TunaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TunaError with the given code and message
func New(code ErrorCode, message string) *TunaError {
	return &TunaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TunaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TunaError {
	return &TunaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TunaError
func Wrap(err error, code ErrorCode, message string) *TunaError {
	if err == nil {
		return nil
	}
	return &TunaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TunaError {
	if err == nil {
		return nil
	}
	return &TunaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TunaError) WithDetail(key string, value interface{}) *TunaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NotImplemented reports an operation a module cannot perform on its own.
// The dispatcher turns it into an informational message.
func NotImplemented(module, operation string) *TunaError {
	return Newf(ErrNotImplemented, "%s does not support %s", module, operation).
		WithDetail("module", module).
		WithDetail("operation", operation)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tunaErr *TunaError
	if errors.As(err, &tunaErr) {
		return tunaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TunaError
func GetErrorCode(err error) ErrorCode {
	var tunaErr *TunaError
	if errors.As(err, &tunaErr) {
		return tunaErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TunaError
func GetErrorDetails(err error) map[string]interface{} {
	var tunaErr *TunaError
	if errors.As(err, &tunaErr) {
		return tunaErr.Details
	}
	return nil
}
