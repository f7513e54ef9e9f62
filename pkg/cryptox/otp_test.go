package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for range 50 {
		code, err := GenerateOTP(DefaultOTPLength)
		require.NoError(t, err)
		require.Len(t, code, DefaultOTPLength)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "otp must be numeric, got %q", code)
		}
	}
}

func TestGenerateOTP_ZeroPadded(t *testing.T) {
	// With length 1 roughly one in ten codes is "0"; with longer codes the
	// leading-zero case is what the padding protects. Just assert the
	// length contract holds across many draws.
	for range 200 {
		code, err := GenerateOTP(4)
		require.NoError(t, err)
		require.Len(t, code, 4)
	}
}

func TestGenerateOTP_RejectsBadLength(t *testing.T) {
	_, err := GenerateOTP(0)
	require.Error(t, err)
	_, err = GenerateOTP(19)
	require.Error(t, err)
}
