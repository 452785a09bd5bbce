package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alibi-backend/internal/database"
	"alibi-backend/internal/models"
)

// RequestsHandler serves the user-facing side of service requests: creating
// one and watching its progress. Admin actions live in AdminRequestsHandler.
type RequestsHandler struct {
	dbClient *database.Client
}

func NewRequestsHandler(dbClient *database.Client) *RequestsHandler {
	return &RequestsHandler{dbClient: dbClient}
}

// CreateRequest godoc
// @Summary     Submit a service request
// @Description Creates a request of the given kind (photo_edit, video_edit,
// @Description line_message, souvenir, invoice) in pending status.
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateRequestRequest true "Request details"
// @Success     201 {object} models.RequestResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /requests [post]
func (h *RequestsHandler) CreateRequest(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if !models.ValidRequestKind(req.Kind) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown request kind", Message: req.Kind})
		return
	}

	request, err := h.dbClient.CreateRequest(userID, req.Kind, req.Title, req.Description, req.ContactName, req.ContactPhone, req.FileURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create request", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.NewRequestResponse(request))
}

// ListRequests godoc
// @Summary     List own requests
// @Tags        requests
// @Produce     json
// @Security    Bearer
// @Param       page query int false "Page number (default 1)"
// @Param       search query string false "Matches title, description, contact name"
// @Param       status query string false "Status filter or 'all'"
// @Success     200 {object} models.RequestListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /requests [get]
func (h *RequestsHandler) ListRequests(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	status := statusParam(c)
	if status != "" && !models.ValidRequestStatus(status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status filter", Message: status})
		return
	}

	page := pageParam(c)
	requests, count, err := h.dbClient.ListRequests(page, database.RequestFilter{
		UserID: userID,
		Search: c.Query("search"),
		Status: status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list requests", Message: err.Error()})
		return
	}

	results := make([]models.RequestResponse, len(requests))
	for i := range requests {
		results[i] = models.NewRequestResponse(&requests[i])
	}

	c.JSON(http.StatusOK, models.RequestListResponse{
		Results:    results,
		Pagination: models.NewPagination(count, page),
	})
}

// GetRequest godoc
// @Summary     Get one of your requests
// @Tags        requests
// @Produce     json
// @Security    Bearer
// @Param       request_id path string true "Request ID (UUID)"
// @Success     200 {object} models.RequestResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /requests/{request_id} [get]
func (h *RequestsHandler) GetRequest(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request id"})
		return
	}

	request, err := h.dbClient.GetRequestForUser(requestID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "request not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewRequestResponse(request))
}
