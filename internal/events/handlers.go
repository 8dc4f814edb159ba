package events

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nkym/gms-backend/internal/errors"
)

// Handler exposes the event HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates an event handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateRequest is the request body for event creation.
type CreateRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Create adds a new event.
// POST /events/create.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Title == "" || req.Date == "" || req.Time == "" || req.Description == "" {
		apierrors.BadRequest(c, "Missing required fields", nil)
		return
	}

	event, err := h.service.Create(c.Request.Context(), Event{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "event": event})
}

// List returns all events.
// GET /events/all.
func (h *Handler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		apierrors.Internal(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Update replaces an event's fields.
// PUT /events/:id.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		apierrors.BadRequest(c, "Event ID is required", nil)
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	err := h.service.Update(c.Request.Context(), id, Event{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event updated successfully"})
}

// Delete removes an event.
// DELETE /events/:id.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		apierrors.BadRequest(c, "Event ID is required", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully"})
}
