package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// Client wraps the Supabase Storage bucket holding gallery photo binaries.
// Photo metadata lives in Postgres; only the bytes go here.
type Client struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewClient(supabaseURL, serviceKey, bucket string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &Client{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadPhoto stores a gallery image under gallery/{photo_id}/{filename} and
// returns the storage path and public URL.
func (c *Client) UploadPhoto(photoID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	storagePath := fmt.Sprintf("gallery/%s/%s", photoID.String(), filename)

	upsert := true
	_, err := c.client.UploadFile(c.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return storagePath, c.PublicURL(storagePath), nil
}

func (c *Client) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, storagePath)
}

func (c *Client) DeletePhoto(storagePath string) error {
	_, err := c.client.RemoveFile(c.bucket, []string{storagePath})
	return err
}

func (c *Client) DownloadPhoto(storagePath string) ([]byte, error) {
	data, err := c.client.DownloadFile(c.bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo: %w", err)
	}
	return data, nil
}
