package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestBadRequestBodyShape(t *testing.T) {
	c, w := newTestContext()

	BadRequest(c, "FCM token is required", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FCM token is required", body["error"])
	_, hasDetails := body["details"]
	assert.False(t, hasDetails, "nil details stay out of the body")
}

func TestInternalCarriesDetails(t *testing.T) {
	c, w := newTestContext()

	Internal(c, "dispatch failed", map[string]interface{}{"stage": "audit"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "dispatch failed", body.Error)
	assert.Equal(t, "audit", body.Details["stage"])
}

func TestAbortWithUnauthorizedStopsChain(t *testing.T) {
	c, w := newTestContext()

	AbortWithUnauthorized(c, "Invalid or expired token", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}
