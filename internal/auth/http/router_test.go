package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	authhttp "github.com/crewdeskhq/crewdesk/internal/auth/http"
	"github.com/crewdeskhq/crewdesk/internal/auth/mailer"
	"github.com/crewdeskhq/crewdesk/internal/auth/service"
	"github.com/crewdeskhq/crewdesk/internal/auth/store/drivers/sqlite"
	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/crewdeskhq/crewdesk/pkg/cryptox"
	"github.com/crewdeskhq/crewdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type serverEnv struct {
	handler http.Handler
	mail    *mailer.Recorder
}

func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("router-test-secret")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(secret, "crewdesk-auth")

	tokens := &service.TokenService{
		Signer:    signer,
		Verifier:  verifier,
		Issuer:    "crewdesk-auth",
		AccessTTL: time.Minute,
	}

	rec := &mailer.Recorder{}
	otp := &service.OtpService{Store: st, TTL: time.Minute, BcryptCost: cryptox.MinCost}

	router := authhttp.NewRouter(verifier, "test", st, slog.New(slog.DiscardHandler))
	router.AuthService = &service.AuthService{
		Store: st, Mailer: rec, Tokens: tokens, Otp: otp, BcryptCost: cryptox.MinCost,
	}
	router.InviteService = &service.InviteService{
		Store: st, Mailer: rec, Tokens: tokens,
		BaseURL: "http://localhost", InviteTTL: time.Hour, BcryptCost: cryptox.MinCost,
	}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	return &serverEnv{handler: router, mail: rec}
}

func (e *serverEnv) request(t *testing.T, method, path, token string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

var (
	otpBodyPattern   = regexp.MustCompile(`code is: (\d{6})`)
	tokenBodyPattern = regexp.MustCompile(`token=([0-9a-f]+)`)
)

func (e *serverEnv) signupAndVerify(t *testing.T, email string) string {
	t.Helper()

	rec := e.request(t, http.MethodPost, "/v1/auth/signup", "",
		authsdk.SignupRequest{Name: "Owner", Email: email, Password: "pw-pw-pw"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	msg, ok := e.mail.Last()
	require.True(t, ok)
	otp := otpBodyPattern.FindStringSubmatch(msg.Body)[1]

	var tok authsdk.TokenResponse
	rec = e.request(t, http.MethodPost, "/v1/auth/verify-otp", "",
		authsdk.VerifyOtpRequest{Email: email, Otp: otp}, &tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	env := newServerEnv(t)

	token := env.signupAndVerify(t, "owner@example.com")

	var me authsdk.UserSummary
	rec := env.request(t, http.MethodGet, "/v1/auth/me", token, nil, &me)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "owner@example.com", me.Email)
	require.Equal(t, "OWNER", me.Role)

	var login authsdk.TokenResponse
	rec = env.request(t, http.MethodPost, "/v1/auth/login", "",
		authsdk.LoginRequest{Email: "owner@example.com", Password: "pw-pw-pw"}, &login)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Bearer", login.TokenType)
}

func TestSignup_BadRequests(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(t, http.MethodPost, "/v1/auth/signup", "",
		authsdk.SignupRequest{Name: "X", Email: "x@example.com"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/v1/auth/signup", "",
		authsdk.SignupRequest{Email: "x@example.com", Password: "pw-pw-pw"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env.signupAndVerify(t, "dup@example.com")
	rec = env.request(t, http.MethodPost, "/v1/auth/signup", "",
		authsdk.SignupRequest{Name: "Dup", Email: "dup@example.com", Password: "pw"}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var er authsdk.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	require.Equal(t, authsdk.ErrorCodeEmailTaken, er.Error)
}

func TestVerifyOtp_UnknownEmailIs404(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(t, http.MethodPost, "/v1/auth/verify-otp", "",
		authsdk.VerifyOtpRequest{Email: "ghost@example.com", Otp: "123456"}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newServerEnv(t)
	env.signupAndVerify(t, "owner@example.com")

	rec := env.request(t, http.MethodPost, "/v1/auth/login", "",
		authsdk.LoginRequest{Email: "owner@example.com", Password: "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodPost, "/v1/auth/login", "",
		authsdk.LoginRequest{Email: "ghost@example.com", Password: "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInviteFlow(t *testing.T) {
	env := newServerEnv(t)
	ownerToken := env.signupAndVerify(t, "owner@example.com")

	rec := env.request(t, http.MethodPost, "/v1/auth/invite", ownerToken,
		authsdk.InviteRequest{Email: "member@example.com", Role: "MEMBER"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	msg, ok := env.mail.Last()
	require.True(t, ok)
	inviteToken := tokenBodyPattern.FindStringSubmatch(msg.Body)[1]

	var tok authsdk.TokenResponse
	rec = env.request(t, http.MethodPost, "/v1/auth/accept-invite", "",
		authsdk.AcceptInviteRequest{Token: inviteToken, Password: "member-pw", Name: "Mem"}, &tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "MEMBER", tok.User.Role)

	// A member must not be able to invite.
	rec = env.request(t, http.MethodPost, "/v1/auth/invite", tok.AccessToken,
		authsdk.InviteRequest{Email: "other@example.com"}, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Replaying the token fails.
	rec = env.request(t, http.MethodPost, "/v1/auth/accept-invite", "",
		authsdk.AcceptInviteRequest{Token: inviteToken, Password: "again"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var users authsdk.UsersResponse
	rec = env.request(t, http.MethodGet, "/v1/users", ownerToken, nil, &users)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, users.Users, 2)
}

func TestInvite_UnknownRoleRejected(t *testing.T) {
	env := newServerEnv(t)
	ownerToken := env.signupAndVerify(t, "owner@example.com")

	rec := env.request(t, http.MethodPost, "/v1/auth/invite", ownerToken,
		authsdk.InviteRequest{Email: "x@example.com", Role: "SUPREME"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newServerEnv(t)

	require.Equal(t, http.StatusUnauthorized,
		env.request(t, http.MethodGet, "/v1/auth/me", "", nil, nil).Code)
	require.Equal(t, http.StatusUnauthorized,
		env.request(t, http.MethodGet, "/v1/users", "", nil, nil).Code)
	require.Equal(t, http.StatusUnauthorized,
		env.request(t, http.MethodPost, "/v1/auth/logout", "", nil, nil).Code)
	require.Equal(t, http.StatusUnauthorized,
		env.request(t, http.MethodPost, "/v1/auth/invite", "",
			authsdk.InviteRequest{Email: "x@example.com"}, nil).Code)
}

func TestLogoutAndHealth(t *testing.T) {
	env := newServerEnv(t)
	token := env.signupAndVerify(t, "owner@example.com")

	rec := env.request(t, http.MethodPost, "/v1/auth/logout", token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The token stays valid afterwards; logout is stateless.
	rec = env.request(t, http.MethodGet, "/v1/auth/me", token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, http.StatusOK,
		env.request(t, http.MethodGet, "/livez", "", nil, nil).Code)
	require.Equal(t, http.StatusOK,
		env.request(t, http.MethodGet, "/readyz", "", nil, nil).Code)
}
