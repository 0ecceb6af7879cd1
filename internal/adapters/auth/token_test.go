package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokens_IssueAndVerify(t *testing.T) {
	secret := "test-secret"
	tokens := NewJWTTokens(secret)

	token, err := tokens.Issue("operator-1", []string{"operator"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "operator-1", claims.Subject)
	assert.Equal(t, []string{"operator"}, claims.Roles)

	subject, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "operator-1", subject)
}

func TestJWTTokens_VerifyRejectsBadSecret(t *testing.T) {
	token, err := NewJWTTokens("secret-a").Issue("operator-1", nil, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTTokens("secret-b").Verify(token)
	require.Error(t, err)
}

func TestJWTTokens_VerifyRejectsExpired(t *testing.T) {
	tokens := NewJWTTokens("secret")
	token, err := tokens.Issue("operator-1", nil, -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	require.Error(t, err)
}
