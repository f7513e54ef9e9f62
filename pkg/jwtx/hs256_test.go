package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "crewdesk-auth"

var testSecret = []byte("test-signing-secret-0123456789ab")

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestNewSignerHS256_EmptySecret(t *testing.T) {
	_, err := NewSignerHS256(nil)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestHS256_SignVerifyRoundTrip(t *testing.T) {
	now := time.Now()
	claims := NewAccessClaims("user-1", "a@x.com", "Alice", "OWNER", 15*time.Minute, testIssuer, now)
	token := signedToken(t, claims)

	v := NewVerifierHS256(testSecret, testIssuer)
	got, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, "OWNER", got.Role)
	require.Equal(t, testIssuer, got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be populated")
}

func TestHS256_WrongSecretRejected(t *testing.T) {
	claims := NewAccessClaims("user-1", "a@x.com", "", "", 15*time.Minute, testIssuer, time.Now())
	token := signedToken(t, claims)

	v := NewVerifierHS256([]byte("a-completely-different-secret"), testIssuer)
	_, err := v.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256_ExpiredRejected(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	claims := NewAccessClaims("user-1", "a@x.com", "", "", time.Minute, testIssuer, issued)
	token := signedToken(t, claims)

	v := NewVerifierHS256(testSecret, testIssuer)
	_, err := v.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256_IssuerMismatchRejected(t *testing.T) {
	claims := NewAccessClaims("user-1", "a@x.com", "", "", time.Minute, "someone-else", time.Now())
	token := signedToken(t, claims)

	v := NewVerifierHS256(testSecret, testIssuer)
	_, err := v.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256_MalformedRejected(t *testing.T) {
	v := NewVerifierHS256(testSecret, testIssuer)
	_, err := v.Verify("not.a.jwt")
	require.Error(t, err)

	_, err = v.Verify("")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecode(t *testing.T) {
	claims := NewAccessClaims("user-9", "b@x.com", "Bob", "MEMBER", time.Minute, testIssuer, time.Now())
	token := signedToken(t, claims)

	decoded := Decode(token)
	require.NotNil(t, decoded)
	require.Equal(t, "user-9", decoded.Subject)
	require.Equal(t, "MEMBER", decoded.Role)

	require.Nil(t, Decode("garbage"), "malformed input decodes to nil")
	require.Nil(t, Decode(""))
}
