package storage_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"alibi-backend/internal/storage"
)

func TestPublicURL(t *testing.T) {
	client, err := storage.NewClient("https://example.supabase.co/", "service-key", "photos")
	assert.NoError(t, err)

	url := client.PublicURL("gallery/abc/cover.jpg")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/photos/gallery/abc/cover.jpg", url)
}

func TestStoragePathFormat(t *testing.T) {
	photoID := uuid.New()
	filename := "sunset.jpg"

	expectedPath := fmt.Sprintf("gallery/%s/%s", photoID.String(), filename)

	assert.Contains(t, expectedPath, "gallery/")
	assert.Contains(t, expectedPath, photoID.String())
	assert.Contains(t, expectedPath, filename)
}
