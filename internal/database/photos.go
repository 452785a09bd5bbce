package database

import (
	"fmt"

	"github.com/google/uuid"

	"alibi-backend/internal/models"
)

const photoColumns = "id, title, description, storage_path, storage_url, file_size, mime_type, created_at"

func scanPhoto(row interface{ Scan(...any) error }) (*models.Photo, error) {
	var p models.Photo
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.StoragePath, &p.StorageURL,
		&p.FileSize, &p.MimeType, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePhoto(photo *models.Photo) error {
	_, err := c.db.Exec(`
		INSERT INTO photos (id, title, description, storage_path, storage_url, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, photo.ID, photo.Title, photo.Description, photo.StoragePath,
		photo.StorageURL, photo.FileSize, photo.MimeType)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

func (c *Client) GetPhoto(photoID uuid.UUID) (*models.Photo, error) {
	photo, err := scanPhoto(c.db.QueryRow(`
		SELECT `+photoColumns+` FROM photos WHERE id = $1
	`, photoID))
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, nil
}

func (c *Client) ListPhotos(page int) ([]models.Photo, int, error) {
	if page < 1 {
		page = 1
	}

	var count int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM photos`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count photos: %w", err)
	}

	rows, err := c.db.Query(`
		SELECT `+photoColumns+` FROM photos
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, models.PageSize, (page-1)*models.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, *photo)
	}

	return photos, count, rows.Err()
}

func (c *Client) DeletePhoto(photoID uuid.UUID) error {
	_, err := c.db.Exec(`DELETE FROM photos WHERE id = $1`, photoID)
	return err
}
