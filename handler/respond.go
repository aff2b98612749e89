package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/logger"
)

// respondError maps a typed error kind to an HTTP status. Untyped errors are
// logged and reported as an opaque 500.
func respondError(c *gin.Context, err error) {
	var status int
	switch domain.KindOf(err) {
	case domain.KindUnauthorized:
		status = http.StatusUnauthorized
	case domain.KindForbidden:
		status = http.StatusForbidden
		logger.Security(logger.EventAccessDenied, "Forbidden request", logger.Fields(
			"path", c.FullPath(),
			"user_id", c.GetString("user_id"),
		))
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindInvalidInput:
		status = http.StatusBadRequest
	default:
		logger.Error(logger.EventGeneral, "Unhandled error", logger.Fields(
			"path", c.FullPath(),
			"error", err.Error(),
		))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUser returns the authenticated user id or aborts with 401.
func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID, true
}
