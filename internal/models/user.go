package models

import (
	"crypto/subtle"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Phone        sql.NullString
	Role         string
	Verified     bool
	OTPCode      sql.NullString
	OTPExpiresAt sql.NullTime
	CreatedAt    time.Time
}

// OTPMatches reports whether code matches the stored one-time code and the
// code has not expired at now. The comparison is constant-time.
func (u *User) OTPMatches(code string, now time.Time) bool {
	if !u.OTPCode.Valid || !u.OTPExpiresAt.Valid {
		return false
	}
	if !now.Before(u.OTPExpiresAt.Time) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.OTPCode.String), []byte(code)) == 1
}
