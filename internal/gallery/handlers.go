package gallery

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nkym/gms-backend/internal/errors"
)

// Handler exposes the gallery HTTP endpoints.
type Handler struct {
	store    Store
	uploader Uploader
}

// NewHandler creates a gallery handler.
func NewHandler(store Store, uploader Uploader) *Handler {
	return &Handler{
		store:    store,
		uploader: uploader,
	}
}

// Upload stores a multipart image on the media host and records its
// metadata.
// POST /gallery/upload.
func (h *Handler) Upload(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Media uploads are not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No image file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	image := Image{
		Src:      url,
		Alt:      c.PostForm("alt"),
		Name:     c.PostForm("name"),
		Uploaded: time.Now().UTC().Format(time.RFC3339),
	}

	id, err := h.store.Create(c.Request.Context(), image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	image.ID = id

	c.JSON(http.StatusCreated, gin.H{"success": true, "image": image})
}

// List returns all gallery entries.
// GET /gallery/all.
func (h *Handler) List(c *gin.Context) {
	images, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "gallery": images})
}

// Update patches gallery metadata; only supplied fields change.
// PUT /gallery/:id.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		apierrors.BadRequest(c, "Gallery item ID is required", nil)
		return
	}

	var update ImageUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if err := h.store.Update(c.Request.Context(), id, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Gallery item updated successfully"})
}

// Delete removes a gallery entry's metadata.
// DELETE /gallery/:id.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		apierrors.BadRequest(c, "Gallery item ID is required", nil)
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Gallery item deleted successfully"})
}
