// Package http wires the auth service's workflows onto net/http routes.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
	"github.com/crewdeskhq/crewdesk/pkg/httpx"
	"github.com/crewdeskhq/crewdesk/pkg/jwtx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"

	_ "github.com/crewdeskhq/crewdesk/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	AuthService   *service.AuthService
	InviteService *service.InviteService
	UserService   *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CrewDesk Auth Service API
//	@version		0.1.0
//	@description	User authentication and team onboarding: signup with email
//	@description	verification, bearer-token login and an invite-and-accept flow
//	@description	with role-based access control.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/auth/signup", &SignupHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /v1/auth/verify-otp", &VerifyOtpHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /v1/auth/login", &LoginHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /v1/auth/accept-invite", &AcceptInviteHandler{InviteService: r.InviteService})

	authn := httpx.AuthnMiddleware(r.verifier, r.accountChecker())

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(LogoutHandler(), authn))

	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(&MeHandler{UserService: r.UserService}, authn))

	// Only owners and managers may invite.
	r.Mux.Handle("POST /v1/auth/invite",
		httpx.Chain(&InviteHandler{InviteService: r.InviteService},
			authn,
			httpx.RequireAnyRole(domain.RoleOwner, domain.RoleManager),
		))
}

func (r *Router) registerUsers() {
	authn := httpx.AuthnMiddleware(r.verifier, r.accountChecker())

	r.Mux.Handle("GET /v1/users",
		httpx.Chain(&UsersHandler{UserService: r.UserService}, authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store))
}

// accountChecker adapts the store to the authn middleware's existence
// probe so tokens for deleted accounts stop working immediately.
func (r *Router) accountChecker() httpx.AccountChecker {
	return accountChecker{store: r.store}
}

type accountChecker struct {
	store store.Store
}

func (c accountChecker) AccountExists(ctx context.Context, id string) (bool, error) {
	_, err := c.store.Accounts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
