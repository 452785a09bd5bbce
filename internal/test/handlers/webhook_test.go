package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"alibi-backend/internal/config"
	"alibi-backend/internal/handlers"
)

func webhookRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewWebhookHandler(cfg, nil)
	router.POST("/api/v1/webhooks/checkout", handler.HandleWebhook)
	return router
}

func TestWebhook_MissingToken(t *testing.T) {
	router := webhookRouter(&config.Config{CheckoutWebhookToken: "secret-token"})

	req, _ := http.NewRequest("POST", "/api/v1/webhooks/checkout", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_WrongToken(t *testing.T) {
	router := webhookRouter(&config.Config{CheckoutWebhookToken: "secret-token"})

	req, _ := http.NewRequest("POST", "/api/v1/webhooks/checkout", bytes.NewBufferString(`{}`))
	req.Header.Set("Authorization", "Bearer wrong-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_InvalidBody(t *testing.T) {
	router := webhookRouter(&config.Config{CheckoutWebhookToken: "secret-token"})

	req, _ := http.NewRequest("POST", "/api/v1/webhooks/checkout", bytes.NewBufferString("not json"))
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_MissingSessionID(t *testing.T) {
	router := webhookRouter(&config.Config{CheckoutWebhookToken: "secret-token"})

	body := `{"event": "checkout.completed"}`
	req, _ := http.NewRequest("POST", "/api/v1/webhooks/checkout", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "session_id")
}

func TestWebhook_UnknownEventAcknowledged(t *testing.T) {
	router := webhookRouter(&config.Config{CheckoutWebhookToken: "secret-token"})

	body := `{"event": "invoice.created", "session_id": "cs_123"}`
	req, _ := http.NewRequest("POST", "/api/v1/webhooks/checkout", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
