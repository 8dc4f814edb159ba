package popup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nkym/gms-backend/internal/errors"
)

// Handler exposes the popup banner HTTP endpoints.
type Handler struct {
	store Store
}

// NewHandler creates a popup handler.
func NewHandler(store Store) *Handler {
	return &Handler{
		store: store,
	}
}

// ListEnabled returns the currently enabled banners, newest first.
// GET /popup/popup-content.
func (h *Handler) ListEnabled(c *gin.Context) {
	contents, err := h.store.ListEnabled(c.Request.Context())
	if err != nil {
		apierrors.Internal(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, contents)
}

// AddRequest is the request body for adding a banner.
type AddRequest struct {
	MediaURL  string `json:"mediaUrl"`
	MediaType string `json:"mediaType"`
	IsEnabled *bool  `json:"isEnabled"`
}

// Add stores a new banner.
// POST /popup/popup-content.
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.MediaURL == "" || req.MediaType == "" || req.IsEnabled == nil {
		apierrors.BadRequest(c, "Missing required fields", nil)
		return
	}

	id, err := h.store.Create(c.Request.Context(), Content{
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		IsEnabled: *req.IsEnabled,
	})
	if err != nil {
		apierrors.Internal(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ToggleRequest is the request body for toggling a banner.
type ToggleRequest struct {
	IsEnabled *bool `json:"isEnabled"`
}

// Toggle sets a banner's visibility flag.
// POST /popup/popup-content/:id.
func (h *Handler) Toggle(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		apierrors.BadRequest(c, "Popup content ID is required", nil)
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsEnabled == nil {
		apierrors.BadRequest(c, "isEnabled is required", nil)
		return
	}

	if err := h.store.SetEnabled(c.Request.Context(), id, *req.IsEnabled); err != nil {
		apierrors.Internal(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
