package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClientError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClientError
		target   error
		expected bool
	}{
		{"connection matches", NewClientError(ErrorTypeConnection, "run_audit", errors.New("dial tcp")), ErrConnectionFailed, true},
		{"auth matches", NewClientError(ErrorTypeAuth, "login", errors.New("bad creds")), ErrUnauthorized, true},
		{"validation matches", NewClientError(ErrorTypeValidation, "audit", errors.New("bad url")), ErrInvalidInput, true},
		{"not found matches", NewClientError(ErrorTypeNotFound, "get_audit", errors.New("gone")), ErrNotFound, true},
		{"malformed matches", NewClientError(ErrorTypeMalformed, "run_audit", errors.New("bad json")), ErrMalformedPayload, true},
		{"wrong sentinel", NewClientError(ErrorTypeConnection, "run_audit", errors.New("dial tcp")), ErrUnauthorized, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := errors.Is(tc.err, tc.target); got != tc.expected {
				t.Errorf("errors.Is = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestClientError_IsThroughWrapping(t *testing.T) {
	inner := WrapConnectionError("list_audits", errors.New("dial tcp: timeout"))
	wrapped := fmt.Errorf("history: %w", inner)

	if !errors.Is(wrapped, ErrConnectionFailed) {
		t.Error("wrapped connection error must still match ErrConnectionFailed")
	}
}

func TestWithStatusCode_Reclassifies(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorType
	}{
		{401, ErrorTypeAuth},
		{403, ErrorTypeAuth},
		{404, ErrorTypeNotFound},
		{500, ErrorTypeAPI},
		{422, ErrorTypeAPI},
	}

	for _, tc := range tests {
		err := NewClientError(ErrorTypeAPI, "op", errors.New("boom")).WithStatusCode(tc.code)
		if err.Type != tc.expected {
			t.Errorf("status %d: Type = %q, want %q", tc.code, err.Type, tc.expected)
		}
		if err.StatusCode != tc.code {
			t.Errorf("StatusCode = %d, want %d", err.StatusCode, tc.code)
		}
	}
}

func TestWrapAPIError(t *testing.T) {
	err := WrapAPIError("login", "Incorrect email or password", 401)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatal("WrapAPIError must return a *ClientError")
	}
	if clientErr.Detail != "Incorrect email or password" {
		t.Errorf("Detail = %q", clientErr.Detail)
	}
	if got := err.Error(); got != "login failed: Incorrect email or password" {
		t.Errorf("Error() = %q", got)
	}
	if !IsAuthError(err) {
		t.Error("401 API error must be an auth error")
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"auth type", NewClientError(ErrorTypeAuth, "whoami", errors.New("expired")), true},
		{"401 status", WrapAPIError("whoami", "expired", 401), true},
		{"403 status", WrapAPIError("whoami", "forbidden", 403), true},
		{"plain unauthorized text", errors.New("server said unauthorized"), true},
		{"unrelated", errors.New("dial tcp"), false},
		{"api 500", WrapAPIError("run_audit", "internal error", 500), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAuthError(tc.err); got != tc.expected {
				t.Errorf("IsAuthError = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(WrapValidationError("audit", errors.New("invalid URL format"))) {
		t.Error("validation wrap must be a validation error")
	}
	if IsValidationError(WrapConnectionError("audit", errors.New("dial tcp"))) {
		t.Error("connection error must not be a validation error")
	}
	if IsValidationError(nil) {
		t.Error("nil must not be a validation error")
	}
}
