package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	ta := NewTokenAuth([]byte("test-secret"), time.Hour)

	tokenString, err := ta.GenerateToken("user-1", "student")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	decoded, err := ta.JWTAuth.Decode(tokenString)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	userID, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	role, err := GetUserRoleFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "student", role)

	jti, err := GetTokenIDFromClaims(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	exp, err := GetExpiryFromClaims(claims)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
}

func TestTokensCarryDistinctIDs(t *testing.T) {
	ta := NewTokenAuth([]byte("test-secret"), time.Hour)

	first, err := ta.GenerateToken("user-1", "student")
	require.NoError(t, err)
	second, err := ta.GenerateToken("user-1", "student")
	require.NoError(t, err)

	// The jti claim differs per token, so logging out one session does not
	// revoke the other.
	assert.NotEqual(t, first, second)
}

func TestClaimHelpers(t *testing.T) {
	_, err := GetUserIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)

	_, err = GetUserRoleFromClaims(map[string]interface{}{"role": 42})
	assert.Error(t, err)

	_, err = GetExpiryFromClaims(map[string]interface{}{"exp": "soon"})
	assert.Error(t, err)

	exp, err := GetExpiryFromClaims(map[string]interface{}{"exp": float64(1700000000)})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), exp.Unix())

	now := time.Now()
	exp, err = GetExpiryFromClaims(map[string]interface{}{"exp": now})
	require.NoError(t, err)
	assert.Equal(t, now, exp)
}
