package authsdk

// Request and response payloads for the auth HTTP API. The server handlers
// and the Go client both marshal against these types so the wire contract
// lives in one place.

// SignupRequest registers a new self-service account.
type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOtpRequest submits the emailed verification code.
type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// InviteRequest invites an email address, optionally naming the invitee
// and assigning a role. Role defaults to MEMBER server-side.
type InviteRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AcceptInviteRequest redeems an invite token and sets credentials.
type AcceptInviteRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// UserSummary is the public projection of an account.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignupResponse acknowledges a registration; no token is issued until the
// email is verified.
type SignupResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// TokenResponse carries a bearer access token plus the identity it was
// issued for. Returned from verify-otp, login and accept-invite.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        UserSummary `json:"user"`
}

// AckResponse is a generic acknowledgment body.
type AckResponse struct {
	Message string `json:"message"`
}

// UsersResponse lists account summaries.
type UsersResponse struct {
	Users []UserSummary `json:"users"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
