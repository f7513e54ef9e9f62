package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

type InviteHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP handles inviting a new team member.
//
//	@Summary		Invite a user
//	@Description	Sends an invitation email with a one-time accept link valid for 24 hours.
//	@Description	Re-inviting the same address replaces the previous link. Requires the
//	@Description	OWNER or MANAGER role. Role defaults to MEMBER when omitted.
//	@Tags			Invites
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.InviteRequest	true	"invitee details"
//	@Success		200		{object}	authsdk.AckResponse		"invitation sent"
//	@Failure		400		{object}	authsdk.ErrorResponse	"missing email or unknown role"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"caller is not OWNER or MANAGER"
//	@Failure		500		{object}	authsdk.ErrorResponse	"email delivery failed"
//	@Router			/v1/auth/invite [post].
func (h *InviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.InviteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role := domain.Role("")
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			authsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		role = parsed
	}

	if err := h.InviteService.InviteUser(ctx, req.Email, req.Name, role); err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AckResponse{Message: "invitation sent"})
}
