package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Request statuses. Transitions are unconstrained (any status may follow any
// other); the server only rejects values outside this set.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Request kinds, one per storefront service.
const (
	KindPhotoEdit   = "photo_edit"
	KindVideoEdit   = "video_edit"
	KindLineMessage = "line_message"
	KindSouvenir    = "souvenir"
	KindInvoice     = "invoice"
)

type Request struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Kind         string
	Title        string
	Description  string
	ContactName  string
	ContactPhone sql.NullString
	FileURL      sql.NullString
	Status       string
	AdminNotes   sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidRequestStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidRequestKind(kind string) bool {
	switch kind {
	case KindPhotoEdit, KindVideoEdit, KindLineMessage, KindSouvenir, KindInvoice:
		return true
	}
	return false
}
