package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

type AcceptInviteHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP handles invite redemption.
//
//	@Summary		Accept an invitation
//	@Description	Redeems the emailed invite token, sets the account password and
//	@Description	returns a bearer token. Tokens are single-use; used, replaced and
//	@Description	expired tokens all fail identically.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.AcceptInviteRequest	true	"token and chosen credentials"
//	@Success		200		{object}	authsdk.TokenResponse		"account activated; bearer token issued"
//	@Failure		400		{object}	authsdk.ErrorResponse		"missing fields or invalid token"
//	@Router			/v1/auth/accept-invite [post].
func (h *AcceptInviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.AcceptInviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, summary, err := h.InviteService.AcceptInvite(ctx, req.Token, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK,
		newTokenResponse(token, summary, h.InviteService.Tokens.AccessTTL))
}
