package http

import (
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/jwtx"
)

func toUserSummary(s domain.Summary) authsdk.UserSummary {
	return authsdk.UserSummary{
		ID:    s.ID,
		Name:  s.Name,
		Email: s.Email,
		Role:  s.Role,
	}
}

func newTokenResponse(token string, s domain.Summary, ttl time.Duration) authsdk.TokenResponse {
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	return authsdk.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        toUserSummary(s),
	}
}
