package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
)

// writeServiceError maps workflow sentinel errors onto wire errors. Every
// handler funnels failures through here so the status mapping lives in one
// place. Unknown errors become an opaque 500.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		authsdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrAccountNotFound):
		authsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidOtp):
		authsdk.ErrInvalidOtp.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInviteTokenInvalid):
		authsdk.ErrInvalidInviteToken.WriteError(w)
	case errors.Is(err, service.ErrEmailDelivery):
		authsdk.ErrEmailDelivery.WriteError(w)
	default:
		log.Error("unhandled service error", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
