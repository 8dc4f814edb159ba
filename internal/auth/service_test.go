package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, adminKey, username, password, passwordHash string) *Service {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return NewService(adminKey, username, password, passwordHash, issuer)
}

func TestVerifyAdminKey(t *testing.T) {
	svc := newTestService(t, "the-key", "", "", "")

	assert.True(t, svc.VerifyAdminKey("the-key"))
	assert.False(t, svc.VerifyAdminKey("wrong"))
	assert.False(t, svc.VerifyAdminKey(""))
}

func TestVerifyAdminKeyUnconfigured(t *testing.T) {
	svc := newTestService(t, "", "", "", "")
	assert.False(t, svc.VerifyAdminKey("anything"))
}

func TestLoginPlaintextPassword(t *testing.T) {
	svc := newTestService(t, "", "admin", "hunter2", "")

	token, ok := svc.Login("admin", "hunter2")
	require.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok = svc.Login("admin", "wrong")
	assert.False(t, ok)

	_, ok = svc.Login("nobody", "hunter2")
	assert.False(t, ok)
}

func TestLoginBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := newTestService(t, "", "admin", "ignored-plaintext", string(hash))

	_, ok := svc.Login("admin", "hunter2")
	assert.True(t, ok)

	_, ok = svc.Login("admin", "ignored-plaintext")
	assert.False(t, ok, "plaintext password is ignored when a hash is configured")
}
