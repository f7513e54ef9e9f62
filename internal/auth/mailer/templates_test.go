package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposeSignupOtp(t *testing.T) {
	msg := ComposeSignupOtp("alice@example.com", "Alice", "123456")

	require.Equal(t, "alice@example.com", msg.To)
	require.Contains(t, msg.Body, "Hi Alice")
	require.Contains(t, msg.Body, "123456")
}

func TestComposeSignupOtp_NoName(t *testing.T) {
	msg := ComposeSignupOtp("alice@example.com", "", "654321")

	require.Contains(t, msg.Body, "Hi,")
	require.Contains(t, msg.Body, "654321")
}

func TestComposeInvite(t *testing.T) {
	msg := ComposeInvite("bob@example.com", "https://app.example.com", "deadbeef")

	require.Equal(t, "bob@example.com", msg.To)
	require.Contains(t, msg.Body, "https://app.example.com/auth/accept-invite?token=deadbeef")
	require.Contains(t, msg.HTMLBody, `href="https://app.example.com/auth/accept-invite?token=deadbeef"`)
}

func TestComposePasswordReset(t *testing.T) {
	msg := ComposePasswordReset("bob@example.com", "https://app.example.com", "cafebabe")

	require.Equal(t, "bob@example.com", msg.To)
	require.Contains(t, msg.Body, "https://app.example.com/auth/reset-password?token=cafebabe")
	require.Contains(t, msg.HTMLBody, "Reset password")
}
