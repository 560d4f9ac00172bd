// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("rahim@example.com", 8760)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "rahim@example.com", claims.Email)
	assert.Equal(t, "rahim@example.com", claims.Subject)
}

func TestJWTExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("rahim@example.com", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateJWT("rahim@example.com", 1)
	require.NoError(t, err)

	SetJWTSecret("another-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTGarbageToken(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
