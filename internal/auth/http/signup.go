package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

type SignupHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles self-service registration.
//
//	@Summary		Register a new account
//	@Description	Creates an unverified account and emails a 6-digit verification code.
//	@Description	The code expires after 10 minutes; verify it via /v1/auth/verify-otp.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupRequest	true	"registration details"
//	@Success		201		{object}	authsdk.SignupResponse	"account created, verification email sent"
//	@Failure		400		{object}	authsdk.ErrorResponse	"missing name, email or password"
//	@Failure		409		{object}	authsdk.ErrorResponse	"email already registered"
//	@Failure		500		{object}	authsdk.ErrorResponse	"email delivery failed"
//	@Router			/v1/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	summary, err := h.AuthService.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.SignupResponse{
		Message: "verification code sent",
		User:    toUserSummary(summary),
	})
}
