package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"alibi-backend/internal/models"
)

const subscriptionColumns = "id, user_id, plan_id, plan_name, status, current_period_end, cancel_at_period_end, created_at, updated_at"

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.PlanName, &s.Status,
		&s.CurrentPeriodEnd, &s.CancelAtPeriodEnd, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) GetSubscription(userID uuid.UUID) (*models.Subscription, error) {
	sub, err := scanSubscription(c.db.QueryRow(`
		SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1
	`, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// UpsertSubscription activates or refreshes a user's subscription after a
// verified checkout. One row per user; a repeat checkout replaces the plan.
func (c *Client) UpsertSubscription(userID uuid.UUID, planID, planName, status string, periodEnd time.Time) (*models.Subscription, error) {
	sub, err := scanSubscription(c.db.QueryRow(`
		INSERT INTO subscriptions (user_id, plan_id, plan_name, status, current_period_end, cancel_at_period_end)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			plan_name = EXCLUDED.plan_name,
			status = EXCLUDED.status,
			current_period_end = EXCLUDED.current_period_end,
			cancel_at_period_end = FALSE
		RETURNING `+subscriptionColumns+`
	`, userID, planID, planName, status, periodEnd))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return sub, nil
}

func (c *Client) SetSubscriptionCancelAtPeriodEnd(userID uuid.UUID, cancel bool) (*models.Subscription, error) {
	sub, err := scanSubscription(c.db.QueryRow(`
		UPDATE subscriptions
		SET cancel_at_period_end = $1
		WHERE user_id = $2
		RETURNING `+subscriptionColumns+`
	`, cancel, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return sub, nil
}

func (c *Client) UpdateSubscriptionStatus(userID uuid.UUID, status string) error {
	_, err := c.db.Exec(`
		UPDATE subscriptions SET status = $1 WHERE user_id = $2
	`, status, userID)
	return err
}

func (c *Client) CreateCheckoutSession(sessionID string, userID uuid.UUID, planID string) error {
	_, err := c.db.Exec(`
		INSERT INTO checkout_sessions (session_id, user_id, plan_id)
		VALUES ($1, $2, $3)
	`, sessionID, userID, planID)
	if err != nil {
		return fmt.Errorf("failed to create checkout session: %w", err)
	}
	return nil
}

func (c *Client) GetCheckoutSession(sessionID string) (*models.CheckoutSession, error) {
	var s models.CheckoutSession
	err := c.db.QueryRow(`
		SELECT session_id, user_id, plan_id, status, created_at
		FROM checkout_sessions
		WHERE session_id = $1
	`, sessionID).Scan(&s.SessionID, &s.UserID, &s.PlanID, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return &s, nil
}

// LatestPendingCheckoutSession is the server-side fallback for a return page
// that lost its session_id query parameter.
func (c *Client) LatestPendingCheckoutSession(userID uuid.UUID) (*models.CheckoutSession, error) {
	var s models.CheckoutSession
	err := c.db.QueryRow(`
		SELECT session_id, user_id, plan_id, status, created_at
		FROM checkout_sessions
		WHERE user_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&s.SessionID, &s.UserID, &s.PlanID, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LatestConfirmedCheckoutSession locates the session behind the user's
// current subscription, for provider-side cancellation.
func (c *Client) LatestConfirmedCheckoutSession(userID uuid.UUID) (*models.CheckoutSession, error) {
	var s models.CheckoutSession
	err := c.db.QueryRow(`
		SELECT session_id, user_id, plan_id, status, created_at
		FROM checkout_sessions
		WHERE user_id = $1 AND status = 'confirmed'
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&s.SessionID, &s.UserID, &s.PlanID, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) MarkCheckoutSessionStatus(sessionID, status string) error {
	_, err := c.db.Exec(`
		UPDATE checkout_sessions SET status = $1 WHERE session_id = $2
	`, status, sessionID)
	return err
}
