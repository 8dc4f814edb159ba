package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Service checks admin credentials and the shared admin key.
type Service struct {
	adminKey          string
	adminUsername     string
	adminPassword     string
	adminPasswordHash string
	issuer            *TokenIssuer
}

// NewService creates an auth service. When adminPasswordHash is non-empty it
// takes precedence over the plaintext password.
func NewService(adminKey, adminUsername, adminPassword, adminPasswordHash string, issuer *TokenIssuer) *Service {
	return &Service{
		adminKey:          adminKey,
		adminUsername:     adminUsername,
		adminPassword:     adminPassword,
		adminPasswordHash: adminPasswordHash,
		issuer:            issuer,
	}
}

// VerifyAdminKey reports whether the supplied key matches the configured
// admin key. Comparison is constant time.
func (s *Service) VerifyAdminKey(key string) bool {
	if s.adminKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) == 1
}

// VerifyCredentials reports whether the supplied username/password pair
// matches the configured admin credentials.
func (s *Service) VerifyCredentials(username, password string) bool {
	if s.adminUsername == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) != 1 {
		return false
	}

	if s.adminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)) == nil
	}
	if s.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
}

// Login validates credentials and returns a signed admin token.
func (s *Service) Login(username, password string) (string, bool) {
	if !s.VerifyCredentials(username, password) {
		return "", false
	}
	token, err := s.issuer.IssueAdminToken()
	if err != nil {
		return "", false
	}
	return token, true
}
