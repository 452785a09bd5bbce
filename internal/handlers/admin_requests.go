package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alibi-backend/internal/database"
	"alibi-backend/internal/models"
	"alibi-backend/internal/ws"
)

// AdminRequestsHandler is the back-office side: the paginated review list,
// the detail view, and the two single-field updates (status, notes).
type AdminRequestsHandler struct {
	dbClient *database.Client
	hub      *ws.Hub
}

func NewAdminRequestsHandler(dbClient *database.Client, hub *ws.Hub) *AdminRequestsHandler {
	return &AdminRequestsHandler{
		dbClient: dbClient,
		hub:      hub,
	}
}

// ListRequests godoc
// @Summary     List requests for review
// @Description Paginated listing of all requests with free-text search and
// @Description status/kind filters. An out-of-range page returns empty
// @Description results with the true total, not an error.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       page query int false "Page number (default 1)"
// @Param       search query string false "Matches title, description, contact name"
// @Param       status query string false "Status filter or 'all'"
// @Param       kind query string false "Kind filter"
// @Success     200 {object} models.RequestListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /admin/requests [get]
func (h *AdminRequestsHandler) ListRequests(c *gin.Context) {
	status := statusParam(c)
	if status != "" && !models.ValidRequestStatus(status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status filter", Message: status})
		return
	}

	kind := c.Query("kind")
	if kind != "" && kind != "all" && !models.ValidRequestKind(kind) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown kind filter", Message: kind})
		return
	}
	if kind == "all" {
		kind = ""
	}

	page := pageParam(c)
	requests, count, err := h.dbClient.ListRequests(page, database.RequestFilter{
		Search: c.Query("search"),
		Status: status,
		Kind:   kind,
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
// @Summary     Request detail
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       request_id path string true "Request ID (UUID)"
// @Success     200 {object} models.RequestResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/requests/{request_id} [get]
func (h *AdminRequestsHandler) GetRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request id"})
		return
	}

	request, err := h.dbClient.GetRequest(requestID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "request not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewRequestResponse(request))
}

// UpdateStatus godoc
// @Summary     Transition a request's status
// @Description Any status may follow any other; only values outside the enum
// @Description are rejected. Returns the stored record so the client can
// @Description display the server-accepted value.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request_id path string true "Request ID (UUID)"
// @Param       request body models.UpdateStatusRequest true "New status"
// @Success     200 {object} models.RequestResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/requests/{request_id}/status [put]
func (h *AdminRequestsHandler) UpdateStatus(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request id"})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if !models.ValidRequestStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status", Message: req.Status})
		return
	}

	// Existence check first so a bad id is a 404, not a silent no-op.
	if _, err := h.dbClient.GetRequest(requestID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "request not found", Message: err.Error()})
		return
	}

	request, err := h.dbClient.UpdateRequestStatus(requestID, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update status", Message: err.Error()})
		return
	}

	h.hub.Publish(ws.UserChannel(request.UserID.String()), "request_updated", models.NewRequestResponse(request))

	c.JSON(http.StatusOK, models.NewRequestResponse(request))
}

// UpdateNotes godoc
// @Summary     Save admin notes on a request
// @Description Independent of status transitions; last write wins.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request_id path string true "Request ID (UUID)"
// @Param       request body models.UpdateNotesRequest true "Notes text"
// @Success     200 {object} models.RequestResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/requests/{request_id}/notes [put]
func (h *AdminRequestsHandler) UpdateNotes(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request id"})
		return
	}

	var req models.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if _, err := h.dbClient.GetRequest(requestID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "request not found", Message: err.Error()})
		return
	}

	request, err := h.dbClient.UpdateRequestNotes(requestID, req.AdminNotes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update notes", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewRequestResponse(request))
}
