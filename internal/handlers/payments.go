package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alibi-backend/internal/checkout"
	"alibi-backend/internal/database"
	"alibi-backend/internal/models"
	"alibi-backend/internal/services"
)

// PaymentsHandler runs the hosted-checkout flow: hand the browser off to the
// provider's page, then reconcile the outcome when it comes back.
type PaymentsHandler struct {
	checkoutClient *checkout.Client
	dbClient       *database.Client
	billing        *services.BillingService
}

func NewPaymentsHandler(checkoutClient *checkout.Client, dbClient *database.Client, billing *services.BillingService) *PaymentsHandler {
	return &PaymentsHandler{
		checkoutClient: checkoutClient,
		dbClient:       dbClient,
		billing:        billing,
	}
}

// Subscribe godoc
// @Summary     Start a checkout
// @Description Creates a hosted checkout session for a plan. The pending
// @Description session id is stored server-side before responding, so a
// @Description return page that lost its query parameter can still confirm.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SubscribeRequest true "Plan and return URLs"
// @Success     200 {object} models.SubscribeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /payments/subscribe [post]
func (h *PaymentsHandler) Subscribe(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	var session *checkout.Session
	err := h.checkoutClient.RetryWithBackoff(func() error {
		var err error
		session, err = h.checkoutClient.CreateSession(req.PlanID, req.SuccessURL, req.CancelURL)
		return err
	}, 3)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to create checkout session", Message: err.Error()})
		return
	}

	if err := h.dbClient.CreateCheckoutSession(session.SessionID, userID, req.PlanID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record checkout session", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SubscribeResponse{
		CheckoutURL: session.URL,
		SessionID:   session.SessionID,
	})
}

// Confirm godoc
// @Summary     Confirm a checkout
// @Description Verifies the session with the provider and activates the
// @Description subscription. An omitted session_id falls back to the
// @Description caller's most recent pending session.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ConfirmRequest false "Session id (optional)"
// @Success     200 {object} models.SubscriptionStatusResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse "Session not completed yet; retry"
// @Failure     502 {object} models.ErrorResponse
// @Router      /payments/confirm [post]
func (h *PaymentsHandler) Confirm(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.ConfirmRequest
	_ = c.ShouldBindJSON(&req)

	sessionID := req.SessionID
	if sessionID == "" {
		stored, err := h.dbClient.LatestPendingCheckoutSession(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no pending checkout session"})
			return
		}
		sessionID = stored.SessionID
	}

	// The session must belong to the caller; ids are provider-issued but
	// arrive via the client.
	stored, err := h.dbClient.GetCheckoutSession(sessionID)
	if err != nil || stored.UserID != userID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "checkout session not found"})
		return
	}

	sub, err := h.billing.ConfirmSession(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionOpen):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "checkout not completed", Message: "payment is still in progress, retry shortly"})
		case errors.Is(err, services.ErrSessionExpired):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "checkout expired", Message: "the checkout session lapsed, start a new one"})
		default:
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to confirm checkout", Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.NewSubscriptionStatusResponse(sub))
}

// Cancel godoc
// @Summary     Cancel at period end
// @Tags        payments
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SubscriptionStatusResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /payments/cancel [post]
func (h *PaymentsHandler) Cancel(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	sub, err := h.dbClient.GetSubscription(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no subscription"})
		return
	}
	if sub.Status != models.SubscriptionActive {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "subscription is not active"})
		return
	}

	// Best effort against the provider first; local state only changes if
	// the provider accepted the cancellation.
	stored, err := h.dbClient.LatestConfirmedCheckoutSession(userID)
	if err == nil {
		if err := h.checkoutClient.CancelSubscription(stored.SessionID); err != nil {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to cancel with provider", Message: err.Error()})
			return
		}
	}

	sub, err = h.dbClient.SetSubscriptionCancelAtPeriodEnd(userID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update subscription", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewSubscriptionStatusResponse(sub))
}

// SubscriptionStatus godoc
// @Summary     Current subscription status
// @Tags        payments
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SubscriptionStatusResponse
// @Router      /payments/subscription [get]
func (h *PaymentsHandler) SubscriptionStatus(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	sub, err := h.dbClient.GetSubscription(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, models.SubscriptionStatusResponse{})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get subscription", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewSubscriptionStatusResponse(sub))
}
