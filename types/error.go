package types

import (
	"errors"
	"fmt"
)

// ErrorCode 统一错误码。
type ErrorCode string

// 参数与本地错误
const (
	ErrInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	ErrFileNotFound     ErrorCode = "FILE_NOT_FOUND"
	ErrProviderNotFound ErrorCode = "PROVIDER_NOT_FOUND"
	ErrDecode           ErrorCode = "DECODE_ERROR"
)

// 上游 HTTP 错误
const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrForbidden       ErrorCode = "FORBIDDEN"
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrRateLimited     ErrorCode = "RATE_LIMITED"
	ErrQuotaExceeded   ErrorCode = "QUOTA_EXCEEDED"
	ErrModelOverloaded ErrorCode = "MODEL_OVERLOADED"
	ErrUpstreamTimeout ErrorCode = "UPSTREAM_TIMEOUT"
	ErrUpstreamError   ErrorCode = "UPSTREAM_ERROR"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	Provider   string    `json:"provider,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Provider != "" {
		prefix = e.Provider + " " + prefix
	}
	if e.HTTPStatus != 0 {
		prefix = fmt.Sprintf("%s status=%d", prefix, e.HTTPStatus)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", prefix, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf 以格式化消息构造 Error。
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus sets the HTTP status code.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithRetryable marks the error as retryable.
// 仅作提示，本库不做任何重试。
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithProvider sets the provider name.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// AsError 提取错误链中的 *Error。
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// IsErrorCode 判断错误链中是否含有指定错误码。
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}
