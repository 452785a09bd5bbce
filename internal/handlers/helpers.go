package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alibi-backend/internal/middleware"
)

// currentUserID reads the authenticated user's id from the request context.
// Returns uuid.Nil when the context has no valid id (unauthenticated route
// or a malformed subject claim).
func currentUserID(c *gin.Context) uuid.UUID {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// pageParam parses ?page=, clamping anything below 1 (including absent or
// unparseable values) to the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// statusParam returns the ?status= filter, treating the "all" sentinel as no
// filter. Validation against the status enum is per-resource.
func statusParam(c *gin.Context) string {
	status := c.Query("status")
	if status == "all" {
		return ""
	}
	return status
}
