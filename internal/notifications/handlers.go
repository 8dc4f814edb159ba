package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nkym/gms-backend/internal/errors"
)

// Handler exposes the notification HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a notification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SaveTokenRequest is the request body for token registration.
type SaveTokenRequest struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// SaveToken registers a device token.
// POST /notifications/save-token.
func (h *Handler) SaveToken(c *gin.Context) {
	var req SaveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		apierrors.BadRequest(c, "FCM token is required", nil)
		return
	}

	if err := h.service.RegisterToken(c.Request.Context(), req.UserID, req.Token); err != nil {
		if errors.Is(err, ErrTokenRequired) {
			apierrors.BadRequest(c, "FCM token is required", nil)
			return
		}
		apierrors.Internal(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token saved successfully",
	})
}

// SendCustomRequest is the request body for a custom notification.
type SendCustomRequest struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// SendCustom dispatches a notification to every active device.
// POST /notifications/send-custom.
func (h *Handler) SendCustom(c *gin.Context) {
	var req SendCustomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Body == "" {
		apierrors.BadRequest(c, "Title and body are required", nil)
		return
	}

	report, err := h.service.Dispatch(c.Request.Context(), req.Title, req.Body, req.Data)
	if err != nil {
		if errors.Is(err, ErrTitleAndBodyRequired) {
			apierrors.BadRequest(c, "Title and body are required", nil)
			return
		}
		apierrors.Internal(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification sent successfully",
		"details": gin.H{
			"successCount": report.SuccessCount,
			"failureCount": report.FailureCount,
		},
	})
}

// Logs returns the send history, most recent first. An optional ?limit=
// caps the result; the default returns everything.
// GET /notifications/logs.
func (h *Handler) Logs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	logs, err := h.service.ListSendHistory(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"logs":    logs,
	})
}
