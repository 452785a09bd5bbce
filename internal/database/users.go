package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"alibi-backend/internal/models"
)

const userColumns = "id, email, password_hash, display_name, phone, role, verified, otp_code, otp_expires_at, created_at"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Phone,
		&u.Role, &u.Verified, &u.OTPCode, &u.OTPExpiresAt, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(email, passwordHash, displayName, phone, otpCode string, otpExpiresAt sql.NullTime) (*models.User, error) {
	user, err := scanUser(c.db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, phone, otp_code, otp_expires_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING `+userColumns+`
	`, email, passwordHash, displayName, phone, otpCode, otpExpiresAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (c *Client) GetUserByEmail(email string) (*models.User, error) {
	user, err := scanUser(c.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (c *Client) GetUser(userID uuid.UUID) (*models.User, error) {
	user, err := scanUser(c.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// MarkUserVerified clears the OTP fields along with flipping the flag so a
// used code can never be replayed.
func (c *Client) MarkUserVerified(userID uuid.UUID) error {
	_, err := c.db.Exec(`
		UPDATE users
		SET verified = TRUE, otp_code = NULL, otp_expires_at = NULL
		WHERE id = $1
	`, userID)
	return err
}

func (c *Client) ListUsers(page int, search string) ([]models.User, int, error) {
	if page < 1 {
		page = 1
	}
	pattern := "%" + search + "%"

	var count int
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM users
		WHERE ($1 = '' OR email ILIKE $2 OR display_name ILIKE $2)
	`, search, pattern).Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := c.db.Query(`
		SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR email ILIKE $2 OR display_name ILIKE $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, search, pattern, models.PageSize, (page-1)*models.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	return users, count, rows.Err()
}
