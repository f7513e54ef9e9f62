package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crewdeskhq/crewdesk/pkg/httpx"
)

// Error codes used on the wire.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeEmailTaken       = "email_taken"
	ErrorCodeInvalidOtp       = "invalid_otp"
	ErrorCodeInvalidToken     = "invalid_or_expired_token"
	ErrorCodeInvalidGrant     = "invalid_credentials"
	ErrorCodeUnauthenticated  = "unauthenticated"
	ErrorCodeInsufficientRole = "insufficient_role"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeEmailDelivery    = "email_delivery_failed"
	ErrorCodeServerError      = "server_error"
)

// APIError is the error type shared by the server handlers (to write
// responses) and the SDK client (to surface them).
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error as a JSON HTTP response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "an account with this email already exists",
	}

	ErrInvalidOtp = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidOtp,
		Description: "the verification code is wrong or has expired",
	}

	ErrInvalidInviteToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidToken,
		Description: "the invite token is invalid, used or expired",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid email or password",
	}

	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "a valid bearer token is required",
	}

	ErrInsufficientRole = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientRole,
		Description: "your role does not permit this operation",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	ErrEmailDelivery = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeEmailDelivery,
		Description: "the notification email could not be delivered",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseAPIError decodes an error body from a non-2xx response.
func parseAPIError(statusCode int, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response (status %d)", statusCode),
		}
	}
	return &APIError{
		StatusCode:  statusCode,
		Code:        er.Error,
		Description: er.ErrorDescription,
	}
}
