package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Subscription statuses as reported to clients. The provider is the source of
// truth; these are the last verified values.
const (
	SubscriptionActive    = "active"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

type Subscription struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	PlanID            string
	PlanName          string
	Status            string
	CurrentPeriodEnd  sql.NullTime
	CancelAtPeriodEnd bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Checkout session lifecycle. A pending row is the server-side fallback copy
// of the provider session id: it is only marked confirmed after the provider
// reports the session paid, so a client that lost its query parameter can
// always reconcile from here.
const (
	CheckoutPending   = "pending"
	CheckoutConfirmed = "confirmed"
	CheckoutExpired   = "expired"
)

type CheckoutSession struct {
	SessionID string
	UserID    uuid.UUID
	PlanID    string
	Status    string
	CreatedAt time.Time
}
