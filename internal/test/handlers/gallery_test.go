package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alibi-backend/internal/handlers"
)

func galleryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewGalleryHandler(nil, nil)
	router.POST("/api/v1/gallery/admin", handler.UploadPhoto)
	router.GET("/api/v1/gallery/admin/:photo_id/download", handler.DownloadPhoto)
	router.DELETE("/api/v1/gallery/admin/:photo_id", handler.DeletePhoto)
	return router
}

func photoForm(t *testing.T, title, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if title != "" {
		require.NoError(t, writer.WriteField("title", title))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadPhoto_RejectsOversizedFile(t *testing.T) {
	router := galleryRouter()

	// One byte over the 16MB cap.
	data := make([]byte, 16<<20+1)
	body, contentType := photoForm(t, "big", "big.jpg", "image/jpeg", data)

	req, _ := http.NewRequest("POST", "/api/v1/gallery/admin", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "16MB")
}

func TestUploadPhoto_RejectsNonImage(t *testing.T) {
	router := galleryRouter()

	body, contentType := photoForm(t, "notes", "notes.txt", "text/plain", []byte("hello"))

	req, _ := http.NewRequest("POST", "/api/v1/gallery/admin", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be an image")
}

func TestUploadPhoto_RequiresTitle(t *testing.T) {
	router := galleryRouter()

	body, contentType := photoForm(t, "", "sunset.jpg", "image/jpeg", []byte("fake-jpeg"))

	req, _ := http.NewRequest("POST", "/api/v1/gallery/admin", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}

func TestDownloadPhoto_InvalidID(t *testing.T) {
	router := galleryRouter()

	req, _ := http.NewRequest("GET", "/api/v1/gallery/admin/not-a-uuid/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePhoto_InvalidID(t *testing.T) {
	router := galleryRouter()

	req, _ := http.NewRequest("DELETE", "/api/v1/gallery/admin/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
