package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alibi-backend/internal/database"
	"alibi-backend/internal/models"
	"alibi-backend/internal/storage"
)

// maxPhotoSize caps gallery uploads at 16MB.
const maxPhotoSize = 16 << 20

type GalleryHandler struct {
	dbClient      *database.Client
	storageClient *storage.Client
}

func NewGalleryHandler(dbClient *database.Client, storageClient *storage.Client) *GalleryHandler {
	return &GalleryHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

// ListPhotos godoc
// @Summary     Browse the gallery
// @Tags        gallery
// @Produce     json
// @Param       page query int false "Page number (default 1)"
// @Success     200 {object} models.PhotoListResponse
// @Router      /gallery [get]
func (h *GalleryHandler) ListPhotos(c *gin.Context) {
	page := pageParam(c)
	photos, count, err := h.dbClient.ListPhotos(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list photos", Message: err.Error()})
		return
	}

	results := make([]models.PhotoResponse, len(photos))
	for i := range photos {
		results[i] = models.NewPhotoResponse(&photos[i])
	}

	c.JSON(http.StatusOK, models.PhotoListResponse{
		Results:    results,
		Pagination: models.NewPagination(count, page),
	})
}

// UploadPhoto godoc
// @Summary     Add a gallery photo
// @Description Multipart upload: the binary goes to object storage, the
// @Description metadata row to the database.
// @Tags        gallery
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       title formData string true "Photo title"
// @Param       description formData string false "Photo description"
// @Param       image formData file true "Image file"
// @Success     201 {object} models.PhotoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /gallery/admin [post]
func (h *GalleryHandler) UploadPhoto(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxPhotoSize); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse multipart form", Message: err.Error()})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "title is required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "image file is required", Message: err.Error()})
		return
	}

	// ParseMultipartForm only bounds in-memory buffering; the size limit has
	// to be checked against the part itself.
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file exceeds the 16MB size limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file must be an image", Message: contentType})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open uploaded file", Message: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read uploaded file", Message: err.Error()})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "uploaded file is empty"})
		return
	}

	photoID := uuid.New()
	storagePath, storageURL, err := h.storageClient.UploadPhoto(photoID, fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store photo", Message: err.Error()})
		return
	}

	photo := &models.Photo{
		ID:          photoID,
		Title:       title,
		StoragePath: storagePath,
		StorageURL:  storageURL,
		MimeType:    contentType,
	}
	if desc := c.PostForm("description"); desc != "" {
		photo.Description.String = desc
		photo.Description.Valid = true
	}
	photo.FileSize.Int64 = int64(len(data))
	photo.FileSize.Valid = true

	if err := h.dbClient.CreatePhoto(photo); err != nil {
		// Roll the orphaned object back; the row is the source of truth.
		if cleanupErr := h.storageClient.DeletePhoto(storagePath); cleanupErr != nil {
			log.Printf("gallery: failed to clean up orphaned object %s: %v", storagePath, cleanupErr)
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create photo", Message: err.Error()})
		return
	}

	stored, err := h.dbClient.GetPhoto(photoID)
	if err != nil {
		c.JSON(http.StatusCreated, models.NewPhotoResponse(photo))
		return
	}

	c.JSON(http.StatusCreated, models.NewPhotoResponse(stored))
}

// DownloadPhoto godoc
// @Summary     Download the original photo file
// @Description Streams the stored binary back, for back-office retrieval of
// @Description the original upload.
// @Tags        gallery
// @Produce     octet-stream
// @Security    Bearer
// @Param       photo_id path string true "Photo ID (UUID)"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /gallery/admin/{photo_id}/download [get]
func (h *GalleryHandler) DownloadPhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("photo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id"})
		return
	}

	photo, err := h.dbClient.GetPhoto(photoID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "photo not found", Message: err.Error()})
		return
	}

	data, err := h.storageClient.DownloadPhoto(photo.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to download photo", Message: err.Error()})
		return
	}

	c.Data(http.StatusOK, photo.MimeType, data)
}

// DeletePhoto godoc
// @Summary     Delete a gallery photo
// @Description Removes the storage object first, then the metadata row. A
// @Description storage failure is logged but does not block the delete.
// @Tags        gallery
// @Produce     json
// @Security    Bearer
// @Param       photo_id path string true "Photo ID (UUID)"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /gallery/admin/{photo_id} [delete]
func (h *GalleryHandler) DeletePhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("photo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id"})
		return
	}

	photo, err := h.dbClient.GetPhoto(photoID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "photo not found", Message: err.Error()})
		return
	}

	if err := h.storageClient.DeletePhoto(photo.StoragePath); err != nil {
		log.Printf("gallery: failed to delete object %s: %v", photo.StoragePath, err)
	}

	if err := h.dbClient.DeletePhoto(photoID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete photo", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "photo deleted successfully"})
}
