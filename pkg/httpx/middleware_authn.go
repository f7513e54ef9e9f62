package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/crewdeskhq/crewdesk/pkg/jwtx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

// AccountChecker confirms that a token subject still maps to a live
// account. Tokens outlive account deletion; this closes that window.
type AccountChecker interface {
	AccountExists(ctx context.Context, id string) (bool, error)
}

// AuthnMiddleware enforces `Authorization: Bearer <jwt>` on every wrapped
// route. A verified token whose subject still exists gets its identity
// attached to the request context; everything else is a 401.
func AuthnMiddleware(v jwtx.Verifier, accounts AccountChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			exists, err := accounts.AccountExists(ctx, claims.Subject)
			if err != nil {
				log.Error("account lookup failed during authn", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}
			if !exists {
				writeBearerError(w, "account no longer exists")
				return
			}

			ctx = ContextWithIdentity(ctx, Identity{
				UserID: claims.Subject,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-style error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthenticated",
		"error_description": desc,
	})
}
