package http

import (
	"net/http"

	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
)

// LogoutHandler godoc
//
//	@Summary		Log out
//	@Description	Acknowledges the end of a session. Access tokens are stateless,
//	@Description	so the client discards its token; nothing is invalidated server-side.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.AckResponse		"logged out"
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid or missing access token"
//	@Router			/v1/auth/logout [post].
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.AckResponse{Message: "logged out"})
	}
}
