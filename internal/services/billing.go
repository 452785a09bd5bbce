package services

import (
	"errors"
	"fmt"
	"log"

	"alibi-backend/internal/checkout"
	"alibi-backend/internal/database"
	"alibi-backend/internal/models"
	"alibi-backend/internal/ws"
)

var (
	// ErrSessionOpen means the customer has not finished the hosted page
	// yet; the caller should retry confirmation later.
	ErrSessionOpen = errors.New("checkout session still open")

	// ErrSessionExpired means the hosted page lapsed unpaid.
	ErrSessionExpired = errors.New("checkout session expired")
)

// BillingService reconciles hosted checkout outcomes into subscription
// state. Both the client-driven confirm endpoint and the provider webhook
// funnel through ConfirmSession, so the two paths cannot disagree.
type BillingService struct {
	checkoutClient *checkout.Client
	dbClient       *database.Client
	hub            *ws.Hub
}

func NewBillingService(checkoutClient *checkout.Client, dbClient *database.Client, hub *ws.Hub) *BillingService {
	return &BillingService{
		checkoutClient: checkoutClient,
		dbClient:       dbClient,
		hub:            hub,
	}
}

// ConfirmSession verifies a session with the provider and, if paid,
// activates the subscription and marks the stored session confirmed. The
// stored session is only marked after activation succeeds, so an interrupted
// confirm can always be replayed. Idempotent: re-confirming a confirmed
// session returns the current subscription.
func (s *BillingService) ConfirmSession(sessionID string) (*models.Subscription, error) {
	stored, err := s.dbClient.GetCheckoutSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("unknown checkout session: %w", err)
	}

	if stored.Status == models.CheckoutConfirmed {
		return s.dbClient.GetSubscription(stored.UserID)
	}

	session, err := s.checkoutClient.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify session with provider: %w", err)
	}

	switch {
	case session.Paid():
	case session.Status == "expired":
		_ = s.dbClient.MarkCheckoutSessionStatus(sessionID, models.CheckoutExpired)
		return nil, ErrSessionExpired
	default:
		return nil, ErrSessionOpen
	}

	sub, err := s.dbClient.UpsertSubscription(
		stored.UserID, session.PlanID, session.PlanName,
		models.SubscriptionActive, session.CurrentPeriodEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	if err := s.dbClient.MarkCheckoutSessionStatus(sessionID, models.CheckoutConfirmed); err != nil {
		// Subscription is active; the pending row will be re-confirmed on
		// the next attempt.
		log.Printf("billing: failed to mark session %s confirmed: %v", sessionID, err)
	}

	s.hub.Publish(ws.UserChannel(stored.UserID.String()), "subscription_updated", models.NewSubscriptionStatusResponse(sub))

	return sub, nil
}

// HandleCheckoutCompleted is the webhook path: same reconciliation,
// fire-and-forget.
func (s *BillingService) HandleCheckoutCompleted(sessionID string) {
	if _, err := s.ConfirmSession(sessionID); err != nil {
		log.Printf("billing: webhook confirm for session %s: %v", sessionID, err)
	}
}

// HandleSubscriptionCancelled marks the subscription cancelled after the
// provider reports the period ended. Like the completed path, the webhook
// payload is only a hint: the session state is re-read from the provider and
// nothing changes unless it confirms the subscription ended.
func (s *BillingService) HandleSubscriptionCancelled(sessionID string) {
	stored, err := s.dbClient.GetCheckoutSession(sessionID)
	if err != nil {
		log.Printf("billing: cancellation webhook for unknown session %s: %v", sessionID, err)
		return
	}

	session, err := s.checkoutClient.GetSession(sessionID)
	if err != nil {
		log.Printf("billing: failed to verify cancellation for session %s: %v", sessionID, err)
		return
	}
	if !session.Ended() {
		log.Printf("billing: provider does not report session %s cancelled, ignoring", sessionID)
		return
	}

	if err := s.dbClient.UpdateSubscriptionStatus(stored.UserID, models.SubscriptionCancelled); err != nil {
		log.Printf("billing: failed to cancel subscription for user %s: %v", stored.UserID, err)
		return
	}

	sub, err := s.dbClient.GetSubscription(stored.UserID)
	if err != nil {
		return
	}
	s.hub.Publish(ws.UserChannel(stored.UserID.String()), "subscription_updated", models.NewSubscriptionStatusResponse(sub))
}
