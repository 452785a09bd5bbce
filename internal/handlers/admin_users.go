package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alibi-backend/internal/database"
	"alibi-backend/internal/models"
)

type AdminUsersHandler struct {
	dbClient *database.Client
}

func NewAdminUsersHandler(dbClient *database.Client) *AdminUsersHandler {
	return &AdminUsersHandler{dbClient: dbClient}
}

// ListUsers godoc
// @Summary     List registered users
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       page query int false "Page number (default 1)"
// @Param       search query string false "Matches email and display name"
// @Success     200 {object} models.UserListResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /admin/users [get]
func (h *AdminUsersHandler) ListUsers(c *gin.Context) {
	page := pageParam(c)
	users, count, err := h.dbClient.ListUsers(page, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list users", Message: err.Error()})
		return
	}

	results := make([]models.UserResponse, len(users))
	for i := range users {
		results[i] = models.NewUserResponse(&users[i])
	}

	c.JSON(http.StatusOK, models.UserListResponse{
		Results:    results,
		Pagination: models.NewPagination(count, page),
	})
}
