package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test_secret", 24)

	token, err := svc.Generate(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ManagerID)
	assert.Equal(t, "admin", claims.Username)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret_one", 24).Generate(1, "admin")
	require.NoError(t, err)

	_, err = NewJWTService("secret_two", 24).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test_secret", 24)

	_, err := svc.Verify("not.a.token")
	assert.Error(t, err)

	_, err = svc.Verify("")
	assert.Error(t, err)
}
