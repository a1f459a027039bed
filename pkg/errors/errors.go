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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Environment resolution errors
	ErrEnvLookup ErrorCode = "ENV_LOOKUP"
	ErrEnvCycle  ErrorCode = "ENV_CYCLE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Link errors
	ErrMissingDir   ErrorCode = "MISSING_DIR"
	ErrCanonicalize ErrorCode = "CANONICALIZE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrDelete       ErrorCode = "DELETE"
	ErrRename       ErrorCode = "RENAME"
	ErrSymlink      ErrorCode = "SYMLINK"
	ErrIO           ErrorCode = "IO"

	// Generate errors
	ErrGitOpen   ErrorCode = "GIT_OPEN"
	ErrGitRemote ErrorCode = "GIT_REMOTE"
)

// DotError represents a structured error with code and details
type DotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotError) Is(target error) bool {
	var targetErr *DotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotError with the given code and message
func New(code ErrorCode, message string) *DotError {
	return &DotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotError {
	return &DotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotError
func Wrap(err error, code ErrorCode, message string) *DotError {
	if err == nil {
		return nil
	}
	return &DotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotError {
	if err == nil {
		return nil
	}
	return &DotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotError) WithDetail(key string, value interface{}) *DotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DotError) WithDetails(details map[string]interface{}) *DotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotErr *DotError
	if errors.As(err, &dotErr) {
		return dotErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotError
func GetErrorCode(err error) ErrorCode {
	var dotErr *DotError
	if errors.As(err, &dotErr) {
		return dotErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotError
func GetErrorDetails(err error) map[string]interface{} {
	var dotErr *DotError
	if errors.As(err, &dotErr) {
		return dotErr.Details
	}
	return nil
}
