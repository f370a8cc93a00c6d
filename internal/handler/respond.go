package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"gihanotis/internal/service"
	"gihanotis/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// abortWithError translates an error into the matching HTTP status. Anything
// unclassified is logged with full detail and answered with a generic 500.
func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, service.ErrAlreadyAccepted), errors.Is(err, service.ErrNotAccepted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrResponseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Request deadline exceeded", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		logger.Error("Unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// paginationMeta is the metadata block attached to every paginated listing.
func paginationMeta(page, perPage, total int) gin.H {
	return gin.H{
		"page":     page,
		"per_page": perPage,
		"total":    total,
		"pages":    (total + perPage - 1) / perPage,
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}
