package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"alibi-backend/internal/handlers"
)

func adminRequestsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewAdminRequestsHandler(nil, nil)
	router.GET("/api/v1/admin/requests", handler.ListRequests)
	router.PUT("/api/v1/admin/requests/:request_id/status", handler.UpdateStatus)
	router.PUT("/api/v1/admin/requests/:request_id/notes", handler.UpdateNotes)
	return router
}

func TestAdminListRequests_UnknownStatus(t *testing.T) {
	router := adminRequestsRouter()

	req, _ := http.NewRequest("GET", "/api/v1/admin/requests?status=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status filter")
}

func TestAdminListRequests_UnknownKind(t *testing.T) {
	router := adminRequestsRouter()

	req, _ := http.NewRequest("GET", "/api/v1/admin/requests?kind=sticker", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown kind filter")
}

func TestAdminUpdateStatus_UnknownStatus(t *testing.T) {
	router := adminRequestsRouter()

	// "done" is outside the enum; the handler must reject it before touching
	// anything.
	body := `{"status": "done"}`
	req, _ := http.NewRequest("PUT", "/api/v1/admin/requests/"+uuid.NewString()+"/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status")
}

func TestAdminUpdateStatus_InvalidID(t *testing.T) {
	router := adminRequestsRouter()

	body := `{"status": "completed"}`
	req, _ := http.NewRequest("PUT", "/api/v1/admin/requests/not-a-uuid/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request id")
}

func TestAdminUpdateNotes_InvalidID(t *testing.T) {
	router := adminRequestsRouter()

	body := `{"admin_notes": "call back tomorrow"}`
	req, _ := http.NewRequest("PUT", "/api/v1/admin/requests/not-a-uuid/notes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request id")
}
