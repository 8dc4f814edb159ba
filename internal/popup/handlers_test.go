package popup

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	contents []Content
	enabled  map[string]bool
}

func newFakeStore(contents ...Content) *fakeStore {
	return &fakeStore{
		contents: contents,
		enabled:  make(map[string]bool),
	}
}

func (f *fakeStore) ListEnabled(ctx context.Context) ([]Content, error) {
	visible := make([]Content, 0)
	for _, c := range f.contents {
		if c.IsEnabled {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (f *fakeStore) Create(ctx context.Context, content Content) (string, error) {
	content.ID = "popup-1"
	f.contents = append(f.contents, content)
	return content.ID, nil
}

func (f *fakeStore) SetEnabled(ctx context.Context, id string, enabled bool) error {
	f.enabled[id] = enabled
	return nil
}

func newPopupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(store)
	router := gin.New()
	router.GET("/popup/popup-content", handler.ListEnabled)
	router.POST("/popup/popup-content", handler.Add)
	router.POST("/popup/popup-content/:id", handler.Toggle)
	return router
}

func TestListEnabledFiltersDisabled(t *testing.T) {
	store := newFakeStore(
		Content{ID: "a", MediaURL: "https://cdn/a.mp4", MediaType: "video", IsEnabled: true, CreatedAt: time.Now()},
		Content{ID: "b", MediaURL: "https://cdn/b.jpg", MediaType: "image", IsEnabled: false, CreatedAt: time.Now()},
	)
	router := newPopupRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/popup/popup-content", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var contents []Content
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contents))
	require.Len(t, contents, 1)
	assert.Equal(t, "a", contents[0].ID)
}

func TestAddMissingFields(t *testing.T) {
	router := newPopupRouter(newFakeStore())

	for name, body := range map[string]gin.H{
		"no media url":  {"mediaType": "image", "isEnabled": true},
		"no media type": {"mediaUrl": "https://cdn/x.jpg", "isEnabled": true},
		"no enabled":    {"mediaUrl": "https://cdn/x.jpg", "mediaType": "image"},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/popup/popup-content", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing required fields")
		})
	}
}

func TestAddOK(t *testing.T) {
	store := newFakeStore()
	router := newPopupRouter(store)

	raw, err := json.Marshal(gin.H{
		"mediaUrl":  "https://cdn/banner.jpg",
		"mediaType": "image",
		"isEnabled": false,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/popup/popup-content", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "popup-1")
	require.Len(t, store.contents, 1)
	assert.False(t, store.contents[0].IsEnabled, "explicit isEnabled=false is honored")
}

func TestToggleRequiresFlag(t *testing.T) {
	router := newPopupRouter(newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/popup/popup-content/popup-1", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "isEnabled is required")
}

func TestToggleOK(t *testing.T) {
	store := newFakeStore()
	router := newPopupRouter(store)

	raw := []byte(`{"isEnabled": false}`)
	req := httptest.NewRequest(http.MethodPost, "/popup/popup-content/popup-1", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	enabled, ok := store.enabled["popup-1"]
	require.True(t, ok)
	assert.False(t, enabled)
}
