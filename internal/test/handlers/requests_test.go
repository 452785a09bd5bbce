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
	"alibi-backend/internal/middleware"
)

// asUser injects an authenticated user id the way AuthMiddleware would.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func requestsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asUser(uuid.New().String()))
	handler := handlers.NewRequestsHandler(nil)
	router.POST("/api/v1/requests", handler.CreateRequest)
	router.GET("/api/v1/requests", handler.ListRequests)
	router.GET("/api/v1/requests/:request_id", handler.GetRequest)
	return router
}

func TestCreateRequest_UnknownKind(t *testing.T) {
	router := requestsRouter()

	body := `{"kind": "sticker", "title": "t", "contact_name": "n"}`
	req, _ := http.NewRequest("POST", "/api/v1/requests", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown request kind")
}

func TestListRequests_UnknownStatus(t *testing.T) {
	router := requestsRouter()

	req, _ := http.NewRequest("GET", "/api/v1/requests?status=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status filter")
}

func TestGetRequest_InvalidID(t *testing.T) {
	router := requestsRouter()

	req, _ := http.NewRequest("GET", "/api/v1/requests/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request id")
}
