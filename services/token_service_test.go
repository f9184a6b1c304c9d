package services_test

import (
	"testing"

	"github.com/brightBediako/farmlink-api/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService("test-secret")
	userID := uuid.NewString()

	token, err := svc.GenerateToken(userID, "kofi@example.com", "vendor")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims["sub"])
	assert.Equal(t, "vendor", claims["role"])
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := services.NewTokenService("secret-a")
	verifier := services.NewTokenService("secret-b")

	token, err := issuer.GenerateToken(uuid.NewString(), "kofi@example.com", "buyer")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	_, err := svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestNewTokenService_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { services.NewTokenService("") })
}

func TestGenerateSingleUseToken(t *testing.T) {
	raw, digest, err := services.GenerateSingleUseToken()
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.NotEqual(t, raw, digest)
	assert.Equal(t, digest, services.HashToken(raw))

	raw2, _, err := services.GenerateSingleUseToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hashed, err := services.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", hashed)

	assert.True(t, services.CheckPassword(hashed, "correct-horse-battery"))
	assert.False(t, services.CheckPassword(hashed, "wrong"))
}

func TestValidatePassword(t *testing.T) {
	assert.Equal(t, services.ErrWeakPassword, services.ValidatePassword("short"))
	assert.Nil(t, services.ValidatePassword("long-enough"))
}
