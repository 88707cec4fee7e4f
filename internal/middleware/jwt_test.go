package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClaimsRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "driver")
	require.NoError(t, err)

	userID, role, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, "driver", role)
}

func TestParseClaimsRejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": float64(42),
		"role":    "driver",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = ParseClaims(signed)
	require.Error(t, err)
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, _, err := ParseClaims("not-a-token")
	require.Error(t, err)
}
