package database

import (
	"fmt"

	"github.com/google/uuid"

	"alibi-backend/internal/models"
)

const requestColumns = "id, user_id, kind, title, description, contact_name, contact_phone, file_url, status, admin_notes, created_at, updated_at"

func scanRequest(row interface{ Scan(...any) error }) (*models.Request, error) {
	var r models.Request
	err := row.Scan(
		&r.ID, &r.UserID, &r.Kind, &r.Title, &r.Description, &r.ContactName,
		&r.ContactPhone, &r.FileURL, &r.Status, &r.AdminNotes, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CreateRequest(userID uuid.UUID, kind, title, description, contactName, contactPhone, fileURL string) (*models.Request, error) {
	request, err := scanRequest(c.db.QueryRow(`
		INSERT INTO requests (user_id, kind, title, description, contact_name, contact_phone, file_url)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		RETURNING `+requestColumns+`
	`, userID, kind, title, description, contactName, contactPhone, fileURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

func (c *Client) GetRequest(requestID uuid.UUID) (*models.Request, error) {
	request, err := scanRequest(c.db.QueryRow(`
		SELECT `+requestColumns+` FROM requests WHERE id = $1
	`, requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request, nil
}

func (c *Client) GetRequestForUser(requestID, userID uuid.UUID) (*models.Request, error) {
	request, err := scanRequest(c.db.QueryRow(`
		SELECT `+requestColumns+` FROM requests WHERE id = $1 AND user_id = $2
	`, requestID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request, nil
}

// RequestFilter narrows ListRequests. Zero values mean "no filter"; UserID
// scopes the listing to one requester (user-facing lists), Status and Kind
// must already be validated enum members.
type RequestFilter struct {
	UserID uuid.UUID
	Search string
	Status string
	Kind   string
}

func (c *Client) ListRequests(page int, filter RequestFilter) ([]models.Request, int, error) {
	if page < 1 {
		page = 1
	}
	pattern := "%" + filter.Search + "%"
	where := `
		WHERE ($1::uuid IS NULL OR user_id = $1)
		  AND ($2 = '' OR title ILIKE $3 OR description ILIKE $3 OR contact_name ILIKE $3)
		  AND ($4 = '' OR status = $4)
		  AND ($5 = '' OR kind = $5)
	`

	var userID any
	if filter.UserID != uuid.Nil {
		userID = filter.UserID
	}

	var count int
	err := c.db.QueryRow(
		`SELECT COUNT(*) FROM requests`+where,
		userID, filter.Search, pattern, filter.Status, filter.Kind,
	).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	rows, err := c.db.Query(
		`SELECT `+requestColumns+` FROM requests`+where+`
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7`,
		userID, filter.Search, pattern, filter.Status, filter.Kind,
		models.PageSize, (page-1)*models.PageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, *request)
	}

	return requests, count, rows.Err()
}

// UpdateRequestStatus persists a status transition and returns the stored
// record so callers can echo the server-accepted value.
func (c *Client) UpdateRequestStatus(requestID uuid.UUID, status string) (*models.Request, error) {
	request, err := scanRequest(c.db.QueryRow(`
		UPDATE requests
		SET status = $1
		WHERE id = $2
		RETURNING `+requestColumns+`
	`, status, requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	return request, nil
}

func (c *Client) UpdateRequestNotes(requestID uuid.UUID, notes string) (*models.Request, error) {
	request, err := scanRequest(c.db.QueryRow(`
		UPDATE requests
		SET admin_notes = $1
		WHERE id = $2
		RETURNING `+requestColumns+`
	`, notes, requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to update request notes: %w", err)
	}
	return request, nil
}
