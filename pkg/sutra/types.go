package sutra

// User is the profile blob returned by the auth endpoints.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the success body of login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// AuditListItem is one row of GET /audits.
type AuditListItem struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	TotalIssues int    `json:"total_issues"`
	Cached      bool   `json:"cached"`
	CreatedAt   string `json:"created_at"`
}

type auditListResponse struct {
	Audits []AuditListItem `json:"audits"`
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}
