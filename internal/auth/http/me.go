package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated caller's identity.
//
//	@Summary		Get the current user
//	@Description	Resolves the bearer token to its account summary.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserSummary		"the authenticated account"
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Failure		404	{object}	authsdk.ErrorResponse	"account no longer exists"
//	@Router			/v1/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	summary, err := h.UserService.CurrentUser(ctx, identity.UserID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserSummary(summary))
}
