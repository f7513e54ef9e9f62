package httpx

import (
	"net/http"
	"strings"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
)

// RequireAnyRole gates a route to callers whose role is in the allowed
// set. Must run after AuthnMiddleware: no identity is a 401, a role
// outside the set is a 403.
func RequireAnyRole(allowed ...domain.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			role, err := domain.ParseRole(id.Role)
			if err != nil || !role.OneOf(allowed...) {
				writeRoleError(w, allowed...)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRoleError(w http.ResponseWriter, required ...domain.Role) {
	names := make([]string, len(required))
	for i, r := range required {
		names[i] = r.String()
	}
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(names, " ")+`"`)
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "insufficient_role",
		"error_description": "requires one of: " + strings.Join(names, ", "),
	})
}
