package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID          uuid.UUID
	Title       string
	Description sql.NullString
	StoragePath string
	StorageURL  string
	FileSize    sql.NullInt64
	MimeType    string
	CreatedAt   time.Time
}
