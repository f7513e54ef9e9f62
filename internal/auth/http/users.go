package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP lists every account.
//
//	@Summary		List users
//	@Description	Returns summaries of all accounts, oldest first. Pending invitees
//	@Description	are included.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UsersResponse	"all accounts"
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Router			/v1/users [get].
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	summaries, err := h.UserService.ListUsers(ctx)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	users := make([]authsdk.UserSummary, 0, len(summaries))
	for _, s := range summaries {
		users = append(users, toUserSummary(s))
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UsersResponse{Users: users})
}
