package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/nkym/gms-backend/internal/errors"
)

// AdminMiddleware validates admin session tokens on protected routes.
type AdminMiddleware struct {
	issuer *TokenIssuer
}

// NewAdminMiddleware creates a middleware backed by the given token issuer.
func NewAdminMiddleware(issuer *TokenIssuer) *AdminMiddleware {
	return &AdminMiddleware{
		issuer: issuer,
	}
}

// RequireAdmin is a middleware that rejects requests without a valid admin
// Bearer token.
func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.AbortWithUnauthorized(c, "Authorization header is required", nil)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			apierrors.AbortWithUnauthorized(c, "Authorization header must be a Bearer token", nil)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			apierrors.AbortWithUnauthorized(c, "Bearer token is empty", nil)
			return
		}

		if err := m.issuer.ValidateAdminToken(token); err != nil {
			apierrors.AbortWithUnauthorized(c, "Invalid or expired token", nil)
			return
		}

		c.Next()
	}
}
