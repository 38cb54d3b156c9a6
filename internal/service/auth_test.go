package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *AuthService {
	return NewAuthService(openTestDB(t), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuth(t)

	token, err := auth.Register("cook@example.com", "cook", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cook", claims.Username)

	loginToken, err := auth.Login("cook@example.com", "correct horse battery")
	require.NoError(t, err)
	loginClaims, err := auth.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Register("cook@example.com", "cook", "correct horse battery")
	require.NoError(t, err)

	_, err = auth.Register("cook@example.com", "other", "another password")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newTestAuth(t)
	_, err := auth.Register("cook@example.com", "cook", "correct horse battery")
	require.NoError(t, err)

	_, err = auth.Login("cook@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	auth := newTestAuth(t)
	token, err := auth.Register("cook@example.com", "cook", "correct horse battery")
	require.NoError(t, err)

	other := NewAuthService(nil, "different-secret", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService(openTestDB(t), "test-secret", -time.Minute)
	token, err := auth.Register("cook@example.com", "cook", "correct horse battery")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
