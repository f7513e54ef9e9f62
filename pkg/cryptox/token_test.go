package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(DefaultTokenBytes)
	require.NoError(t, err)
	require.Len(t, token, DefaultTokenBytes*2, "hex encoding doubles the byte length")

	_, err = hex.DecodeString(token)
	require.NoError(t, err, "token should be valid hex")
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		token, err := GenerateToken(16)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "tokens must not repeat")
		seen[token] = struct{}{}
	}
}

func TestGenerateToken_RejectsNonPositiveSize(t *testing.T) {
	_, err := GenerateToken(0)
	require.Error(t, err)
	_, err = GenerateToken(-1)
	require.Error(t, err)
}

func TestFingerprintToken(t *testing.T) {
	fp1 := FingerprintToken("some-opaque-token")
	fp2 := FingerprintToken("some-opaque-token")
	require.Equal(t, fp1, fp2, "fingerprint must be deterministic")
	require.Len(t, fp1, 64, "sha256 hex digest is 64 chars")
	require.NotEqual(t, fp1, FingerprintToken("other-token"))
	require.NotContains(t, fp1, "some-opaque-token")
}
