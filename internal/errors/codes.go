package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for AI operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeContextFetchFailed indicates the mandatory profile fetch failed.
	ErrCodeContextFetchFailed ErrorCode = "CONTEXT_FETCH_FAILED"
	// ErrCodeProviderError indicates a single backend call failed.
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"
	// ErrCodeFallbackExhausted indicates both primary and fallback providers failed.
	ErrCodeFallbackExhausted ErrorCode = "FALLBACK_EXHAUSTED"
	// ErrCodeProviderNotConfigured indicates the resolved provider has no adapter.
	ErrCodeProviderNotConfigured ErrorCode = "PROVIDER_NOT_CONFIGURED"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// AIError represents a structured error for AI operations.
type AIError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AIError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AIError) WithContext(key string, value interface{}) *AIError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetCode returns the error code.
func (e *AIError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *AIError {
	return &AIError{Code: ErrCodeInvalidArgument, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *AIError {
	return &AIError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// ContextFetchFailed creates a fatal context fetch error.
func ContextFetchFailed(msg string, cause error) *AIError {
	return &AIError{Code: ErrCodeContextFetchFailed, Message: msg, Cause: cause}
}

// ProviderNotConfigured creates a missing adapter error.
func ProviderNotConfigured(provider string) *AIError {
	return &AIError{
		Code:    ErrCodeProviderNotConfigured,
		Message: fmt.Sprintf("no adapter configured for provider: %s", provider),
	}
}

// FallbackExhausted creates an error carrying both the primary and fallback failures.
// This is the only error class surfaced to end users.
func FallbackExhausted(primaryErr, fallbackErr error) *AIError {
	return &AIError{
		Code:    ErrCodeFallbackExhausted,
		Message: fmt.Sprintf("primary provider failed: %v; fallback provider failed: %v", primaryErr, fallbackErr),
		Cause:   primaryErr,
	}
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *AIError {
	return &AIError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// Timeout creates a timeout error.
func Timeout(msg string) *AIError {
	return &AIError{Code: ErrCodeTimeout, Message: msg}
}

// Wrap wraps an existing error with additional context.
func Wrap(cause error, code ErrorCode, msg string) *AIError {
	return &AIError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if aiErr, ok := err.(*AIError); ok {
		return aiErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an AIError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if aiErr, ok := err.(*AIError); ok {
		return aiErr.Code
	}
	return defaultCode
}
