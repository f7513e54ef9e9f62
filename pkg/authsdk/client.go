// Package authsdk is the Go client for the auth service plus the shared
// wire types used by its HTTP handlers.
package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a running auth service instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// AccessToken, when set, is sent as a bearer token on every request.
	AccessToken string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that authenticates with the given
// bearer token.
func (c *Client) WithToken(token string) *Client {
	dup := *c
	dup.AccessToken = token
	return &dup
}

// Signup registers a new account. The verification code goes out by email.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var out SignupResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/signup", req, &out)
	return out, err
}

// VerifyOtp submits the emailed code and returns a bearer token.
func (c *Client) VerifyOtp(ctx context.Context, req VerifyOtpRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/verify-otp", req, &out)
	return out, err
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", req, &out)
	return out, err
}

// Logout acknowledges the end of a session. Tokens are stateless, so this
// is a client-side cue rather than server-side invalidation.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

// Me returns the identity behind the client's bearer token.
func (c *Client) Me(ctx context.Context) (UserSummary, error) {
	var out UserSummary
	err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, &out)
	return out, err
}

// Invite sends an invitation email. Requires OWNER or MANAGER.
func (c *Client) Invite(ctx context.Context, req InviteRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/invite", req, nil)
}

// AcceptInvite redeems an invite token and returns a bearer token for the
// activated account.
func (c *Client) AcceptInvite(ctx context.Context, req AcceptInviteRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/accept-invite", req, &out)
	return out, err
}

// ListUsers returns every account summary.
func (c *Client) ListUsers(ctx context.Context) ([]UserSummary, error) {
	var out UsersResponse
	err := c.do(ctx, http.MethodGet, "/v1/users", nil, &out)
	return out.Users, err
}

// Livez reports whether the service is up.
func (c *Client) Livez(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/livez", nil, nil)
}

// Readyz reports whether the service can reach its dependencies.
func (c *Client) Readyz(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
