package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the admin auth HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates an auth handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// VerifyAdminKeyRequest is the request body for admin key verification.
type VerifyAdminKeyRequest struct {
	AdminKey string `json:"adminKey"`
}

// VerifyAdminKey checks a shared admin key.
// POST /api/verify-admin.
func (h *Handler) VerifyAdminKey(c *gin.Context) {
	var req VerifyAdminKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AdminKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Admin key is required"})
		return
	}

	if !h.service.VerifyAdminKey(req.AdminKey) {
		c.JSON(http.StatusForbidden, gin.H{"valid": false, "error": "Invalid admin key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the admin user and returns a session token.
// POST /api/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	token, ok := h.service.Login(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin logged in successfully", "token": token})
}
