// Package sutra is the typed HTTP client for the A11ySutra audit backend.
// It owns transport, bearer auth, and the error envelope; audit payloads
// are returned raw for the report model to normalize at the boundary.
package sutra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/a11ysutra/a11ysutra-cli/internal/errors"
	"github.com/a11ysutra/a11ysutra-cli/internal/logging"
	"github.com/rs/zerolog/log"
)

// Client talks to the audit backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// ClientConfig holds configuration for the backend client.
type ClientConfig struct {
	BaseURL string
	Token   string        // bearer token; empty for unauthenticated calls
	Timeout time.Duration // zero means 120s (audits can run long)
}

// NewClient creates a backend client.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
		log.Debug().Str("base_url", base).Msg("No scheme in backend URL, defaulting to HTTPS")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimSuffix(base, "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      cfg.Token,
	}, nil
}

// SetToken replaces the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates an account and returns the token plus profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &resp, "register"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &resp, "login"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword requests a password-reset email. A 2xx carries no body
// contract; only errors are surfaced.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", body, nil, "forgot_password")
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user, "fetch_profile"); err != nil {
		return nil, err
	}
	return &user, nil
}

// RunAudit submits a URL for auditing and returns the raw fresh-shape
// payload for normalization.
func (c *Client) RunAudit(ctx context.Context, auditURL string) ([]byte, error) {
	body := map[string]string{"url": auditURL}
	return c.doRaw(ctx, http.MethodPost, "/audit", body, "run_audit")
}

// ListAudits returns the stored audit history, optionally filtered by a
// URL substring.
func (c *Client) ListAudits(ctx context.Context, query string) ([]AuditListItem, error) {
	path := "/audits"
	if query != "" {
		path += "?query=" + url.QueryEscape(query)
	}

	var resp auditListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, "list_audits"); err != nil {
		return nil, err
	}
	return resp.Audits, nil
}

// GetAudit fetches one stored audit and returns the raw stored-shape
// payload for normalization.
func (c *Client) GetAudit(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/audits/"+url.PathEscape(id), nil, "get_audit")
}

// doJSON performs a request and decodes the success body into out, which
// may be nil when the response body is not relied upon.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}, op string) error {
	data, err := c.doRaw(ctx, method, path, body, op)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewClientError(apperrors.ErrorTypeMalformed, op, err)
	}
	return nil
}

// doRaw performs a request and returns the raw success body. Every call
// carries a request ID, reused from the context when one is present,
// for log correlation against the backend.
func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}, op string) ([]byte, error) {
	ctx, requestID := logging.WithRequestID(ctx, logging.RequestIDFrom(ctx))

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", requestID)

	log.Debug().Str("op", op).Str("request_id", requestID).Str("path", path).Msg("API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.WrapConnectionError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.WrapConnectionError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := decodeDetail(data)
		log.Debug().Int("status", resp.StatusCode).Str("op", op).Str("request_id", requestID).Str("detail", detail).Msg("API error response")
		return nil, apperrors.WrapAPIError(op, detail, resp.StatusCode)
	}

	return data, nil
}

// decodeDetail extracts the backend's {"detail": ...} message, falling
// back to a generic line when the body is not that envelope.
func decodeDetail(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return "request failed"
}
