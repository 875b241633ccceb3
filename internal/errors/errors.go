package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Base error types
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConnectionFailed = errors.New("connection failed")
	ErrMalformedPayload = errors.New("malformed payload")
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeConnection ErrorType = "connection"
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeAPI        ErrorType = "api"
	ErrorTypeMalformed  ErrorType = "malformed"
)

// ClientError is a structured error for backend client operations
type ClientError struct {
	Type       ErrorType
	Op         string // Operation that failed (e.g., "login", "run_audit")
	Detail     string // Human-readable detail from the API error body
	Err        error  // Underlying error
	StatusCode int    // HTTP status code if applicable
	Timestamp  time.Time
}

func (e *ClientError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is matching against the base error types
func (e *ClientError) Is(target error) bool {
	if target == nil {
		return false
	}

	switch target {
	case ErrNotFound:
		return e.Type == ErrorTypeNotFound
	case ErrUnauthorized:
		return e.Type == ErrorTypeAuth
	case ErrConnectionFailed:
		return e.Type == ErrorTypeConnection
	case ErrInvalidInput:
		return e.Type == ErrorTypeValidation
	case ErrMalformedPayload:
		return e.Type == ErrorTypeMalformed
	}

	return errors.Is(e.Err, target)
}

// NewClientError creates a new ClientError
func NewClientError(errorType ErrorType, op string, err error) *ClientError {
	return &ClientError{
		Type:      errorType,
		Op:        op,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// WithDetail attaches the API-supplied detail message to the error
func (e *ClientError) WithDetail(detail string) *ClientError {
	e.Detail = detail
	return e
}

// WithStatusCode adds the HTTP status code to the error
func (e *ClientError) WithStatusCode(code int) *ClientError {
	e.StatusCode = code
	if code == 401 || code == 403 {
		e.Type = ErrorTypeAuth
	} else if code == 404 {
		e.Type = ErrorTypeNotFound
	}
	return e
}

// Helper functions

// WrapConnectionError wraps a transport-level failure with context
func WrapConnectionError(op string, err error) error {
	return NewClientError(ErrorTypeConnection, op, err)
}

// WrapAPIError wraps a non-2xx API response with its detail and status code
func WrapAPIError(op, detail string, statusCode int) error {
	err := NewClientError(ErrorTypeAPI, op, errors.New(detail))
	return err.WithDetail(detail).WithStatusCode(statusCode)
}

// WrapValidationError wraps a local input-validation failure
func WrapValidationError(op string, err error) error {
	return NewClientError(ErrorTypeValidation, op, err)
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		if clientErr.Type == ErrorTypeAuth {
			return true
		}
		if clientErr.StatusCode == 401 || clientErr.StatusCode == 403 {
			return true
		}
	}

	if errors.Is(err, ErrUnauthorized) {
		return true
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "401") ||
		strings.Contains(errMsg, "403") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "forbidden")
}

// IsValidationError checks if an error originated from local input validation
func IsValidationError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrorTypeValidation
	}
	return errors.Is(err, ErrInvalidInput)
}
