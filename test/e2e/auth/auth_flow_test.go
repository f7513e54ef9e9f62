package auth_test

import (
	"testing"

	"github.com/crewdeskhq/crewdesk/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestSignupVerifyLogin walks the self-registration path end to end: the
// verification code really goes out over SMTP and is read back from the
// mailbox.
func TestSignupVerifyLogin(t *testing.T) {
	stack, cleanup := setupStack(t)
	defer cleanup()

	ctx := t.Context()
	client := authsdk.NewClient(stack.BaseURL)

	signup, err := client.Signup(ctx, authsdk.SignupRequest{
		Name:     "Alice",
		Email:    "alice@crewdesk.test",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.Equal(t, "OWNER", signup.User.Role)

	otp := extractOtp(t, latestEmailText(t, stack.MailpitURL, "alice@crewdesk.test"))

	verified, err := client.VerifyOtp(ctx, authsdk.VerifyOtpRequest{
		Email: "alice@crewdesk.test",
		Otp:   otp,
	})
	require.NoError(t, err)
	require.NotEmpty(t, verified.AccessToken)

	me, err := client.WithToken(verified.AccessToken).Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice@crewdesk.test", me.Email)

	login, err := client.Login(ctx, authsdk.LoginRequest{
		Email:    "alice@crewdesk.test",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)

	// Wrong password must be rejected.
	_, err = client.Login(ctx, authsdk.LoginRequest{
		Email:    "alice@crewdesk.test",
		Password: "wrong",
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeInvalidGrant, apiErr.Code)
}

// TestInviteAcceptFlow covers the owner inviting a member, the member
// accepting via the emailed link, and role enforcement on the invite
// endpoint.
func TestInviteAcceptFlow(t *testing.T) {
	stack, cleanup := setupStack(t)
	defer cleanup()

	ctx := t.Context()
	client := authsdk.NewClient(stack.BaseURL)

	// Bootstrap an owner account.
	_, err := client.Signup(ctx, authsdk.SignupRequest{
		Name:     "Owner",
		Email:    "owner@crewdesk.test",
		Password: "owner-password",
	})
	require.NoError(t, err)

	otp := extractOtp(t, latestEmailText(t, stack.MailpitURL, "owner@crewdesk.test"))
	verified, err := client.VerifyOtp(ctx, authsdk.VerifyOtpRequest{
		Email: "owner@crewdesk.test",
		Otp:   otp,
	})
	require.NoError(t, err)
	owner := client.WithToken(verified.AccessToken)

	require.NoError(t, owner.Invite(ctx, authsdk.InviteRequest{
		Email: "member@crewdesk.test",
		Name:  "Member",
		Role:  "MEMBER",
	}))

	token := extractInviteToken(t, latestEmailText(t, stack.MailpitURL, "member@crewdesk.test"))

	accepted, err := client.AcceptInvite(ctx, authsdk.AcceptInviteRequest{
		Token:    token,
		Password: "member-password",
	})
	require.NoError(t, err)
	require.Equal(t, "MEMBER", accepted.User.Role)

	// The link is single-use.
	_, err = client.AcceptInvite(ctx, authsdk.AcceptInviteRequest{
		Token:    token,
		Password: "again",
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeInvalidToken, apiErr.Code)

	// Members cannot invite.
	member := client.WithToken(accepted.AccessToken)
	err = member.Invite(ctx, authsdk.InviteRequest{Email: "third@crewdesk.test"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeInsufficientRole, apiErr.Code)

	// Both accounts show up in the user list.
	users, err := owner.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

// TestHealthEndpoints confirms both probes answer once the container is up.
func TestHealthEndpoints(t *testing.T) {
	stack, cleanup := setupStack(t)
	defer cleanup()

	ctx := t.Context()
	client := authsdk.NewClient(stack.BaseURL)

	require.NoError(t, client.Livez(ctx))
	require.NoError(t, client.Readyz(ctx))
}
