package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatOpen   = "open"
	ChatClosed = "closed"
)

const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

type Chat struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatMessage struct {
	ID        uuid.UUID
	ChatID    uuid.UUID
	Sender    string
	SenderID  uuid.UUID
	Content   string
	CreatedAt time.Time
}

func ValidChatStatus(status string) bool {
	return status == ChatOpen || status == ChatClosed
}
