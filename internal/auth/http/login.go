package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles password login.
//
//	@Summary		Log in
//	@Description	Authenticates with email and password and returns a bearer token.
//	@Description	Unknown email and wrong password produce identical 401 responses.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	authsdk.TokenResponse	"bearer token issued"
//	@Failure		400		{object}	authsdk.ErrorResponse	"missing email or password"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid credentials"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, summary, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK,
		newTokenResponse(token, summary, h.AuthService.Tokens.AccessTTL))
}
