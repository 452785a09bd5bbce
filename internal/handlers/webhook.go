package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alibi-backend/internal/config"
	"alibi-backend/internal/models"
	"alibi-backend/internal/services"
)

type WebhookHandler struct {
	config  *config.Config
	billing *services.BillingService
}

func NewWebhookHandler(cfg *config.Config, billing *services.BillingService) *WebhookHandler {
	return &WebhookHandler{
		config:  cfg,
		billing: billing,
	}
}

// CheckoutWebhookEvent is the provider's callback payload.
type CheckoutWebhookEvent struct {
	Event     string `json:"event"` // "checkout.completed" or "subscription.cancelled"
	SessionID string `json:"session_id"`
}

// HandleWebhook godoc
// @Summary     Checkout provider webhook
// @Description Receives payment callbacks. Authenticated with the shared
// @Description webhook token; processing happens asynchronously so the
// @Description provider gets a fast acknowledgement.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Authorization header string true "Webhook token"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /webhooks/checkout [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization token"})
		return
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if h.config.CheckoutWebhookToken != "" && token != h.config.CheckoutWebhookToken {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization token"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read request body", Message: err.Error()})
		return
	}

	var event CheckoutWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse event", Message: err.Error()})
		return
	}

	if event.SessionID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing session_id"})
		return
	}

	switch event.Event {
	case "checkout.completed":
		go h.billing.HandleCheckoutCompleted(event.SessionID)
	case "subscription.cancelled":
		go h.billing.HandleSubscriptionCancelled(event.SessionID)
	default:
		// Unknown events are acknowledged so the provider stops retrying.
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
