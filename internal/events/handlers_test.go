package events

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventsRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(store, nil, newTestLogger(), false))
	router := gin.New()
	router.POST("/events/create", handler.Create)
	router.GET("/events/all", handler.List)
	router.PUT("/events/:id", handler.Update)
	router.DELETE("/events/:id", handler.Delete)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateEventValidation(t *testing.T) {
	router := newEventsRouter(newFakeStore())

	w := postJSON(t, router, http.MethodPost, "/events/create", gin.H{"title": "Aarti"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
}

func TestCreateEventOK(t *testing.T) {
	store := newFakeStore()
	router := newEventsRouter(store)

	w := postJSON(t, router, http.MethodPost, "/events/create", gin.H{
		"title":       "Aarti",
		"date":        "2026-09-01",
		"time":        "18:00",
		"description": "Evening aarti",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool  `json:"success"`
		Event   Event `json:"event"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "evt-1", resp.Event.ID)
	require.Len(t, store.events, 1)
}

func TestListEvents(t *testing.T) {
	store := newFakeStore(Event{ID: "e1", Title: "Aarti"})
	router := newEventsRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/events/all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Events []Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "e1", resp.Events[0].ID)
}

func TestUpdateEvent(t *testing.T) {
	store := newFakeStore()
	router := newEventsRouter(store)

	w := postJSON(t, router, http.MethodPut, "/events/e1", gin.H{"title": "Updated"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Updated", store.updated["e1"].Title)
}

func TestDeleteEvent(t *testing.T) {
	store := newFakeStore()
	router := newEventsRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/events/e1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"e1"}, store.deleted)
}
