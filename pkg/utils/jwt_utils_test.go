package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken("jordan@example.com", "Jordan Lee")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", claims.Email)
	assert.Equal(t, "Jordan Lee", claims.Name)
	assert.Equal(t, "fitnexus-identity", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("definitely.not.ajwt")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	token, err := GenerateAccessToken("jordan@example.com", "Jordan Lee")
	require.NoError(t, err)

	SetJWTSecret("a-different-secret")
	defer SetJWTSecret("fitnexus-dev-jwt-secret")

	_, err = ValidateToken(token)
	assert.Error(t, err)
}
