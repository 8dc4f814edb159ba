package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	require.Error(t, err)
}

func TestIssueAndValidateAdminToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.IssueAdminToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, issuer.ValidateAdminToken(token))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer("secret-a", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.IssueAdminToken()
	require.NoError(t, err)

	assert.ErrorIs(t, other.ValidateAdminToken(token), ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := issuer.IssueAdminToken()
	require.NoError(t, err)

	assert.Error(t, issuer.ValidateAdminToken(token))
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	assert.Error(t, issuer.ValidateAdminToken("not-a-jwt"))
}
