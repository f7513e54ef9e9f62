package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

type VerifyOtpHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles email verification.
//
//	@Summary		Verify the signup email
//	@Description	Checks the emailed code, marks the account verified and returns a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyOtpRequest	true	"email and code"
//	@Success		200		{object}	authsdk.TokenResponse		"verified; bearer token issued"
//	@Failure		400		{object}	authsdk.ErrorResponse		"wrong or expired code"
//	@Failure		404		{object}	authsdk.ErrorResponse		"no account for this email"
//	@Router			/v1/auth/verify-otp [post].
func (h *VerifyOtpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.VerifyOtpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, summary, err := h.AuthService.VerifySignupOtp(ctx, req.Email, req.Otp)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK,
		newTokenResponse(token, summary, h.AuthService.Tokens.AccessTTL))
}
