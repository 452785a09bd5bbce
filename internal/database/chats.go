package database

import (
	"fmt"

	"github.com/google/uuid"

	"alibi-backend/internal/models"
)

const chatColumns = "id, user_id, status, created_at, updated_at"

func scanChat(row interface{ Scan(...any) error }) (*models.Chat, error) {
	var c models.Chat
	if err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateChat returns the user's support chat, creating it on first use.
// One chat per user.
func (c *Client) GetOrCreateChat(userID uuid.UUID) (*models.Chat, error) {
	chat, err := scanChat(c.db.QueryRow(`
		INSERT INTO chats (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING `+chatColumns+`
	`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create chat: %w", err)
	}
	return chat, nil
}

func (c *Client) GetChat(chatID uuid.UUID) (*models.Chat, error) {
	chat, err := scanChat(c.db.QueryRow(`
		SELECT `+chatColumns+` FROM chats WHERE id = $1
	`, chatID))
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return chat, nil
}

func (c *Client) ListChats(page int, status string) ([]models.Chat, int, error) {
	if page < 1 {
		page = 1
	}

	var count int
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM chats WHERE ($1 = '' OR status = $1)
	`, status).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count chats: %w", err)
	}

	rows, err := c.db.Query(`
		SELECT `+chatColumns+` FROM chats
		WHERE ($1 = '' OR status = $1)
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, status, models.PageSize, (page-1)*models.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, *chat)
	}

	return chats, count, rows.Err()
}

func (c *Client) UpdateChatStatus(chatID uuid.UUID, status string) (*models.Chat, error) {
	chat, err := scanChat(c.db.QueryRow(`
		UPDATE chats SET status = $1 WHERE id = $2
		RETURNING `+chatColumns+`
	`, status, chatID))
	if err != nil {
		return nil, fmt.Errorf("failed to update chat status: %w", err)
	}
	return chat, nil
}

func (c *Client) CreateChatMessage(chatID uuid.UUID, sender string, senderID uuid.UUID, content string) (*models.ChatMessage, error) {
	var m models.ChatMessage
	err := c.db.QueryRow(`
		INSERT INTO chat_messages (chat_id, sender, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, chat_id, sender, sender_id, content, created_at
	`, chatID, sender, senderID, content).Scan(
		&m.ID, &m.ChatID, &m.Sender, &m.SenderID, &m.Content, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}

	// Bump the chat's updated_at so admin listings sort by recent activity.
	_, _ = c.db.Exec(`UPDATE chats SET updated_at = NOW() WHERE id = $1`, chatID)

	return &m, nil
}

// ListChatMessages returns the most recent messages in chronological order.
func (c *Client) ListChatMessages(chatID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	rows, err := c.db.Query(`
		SELECT id, chat_id, sender, sender_id, content, created_at
		FROM (
			SELECT id, chat_id, sender, sender_id, content, created_at
			FROM chat_messages
			WHERE chat_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Sender, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
