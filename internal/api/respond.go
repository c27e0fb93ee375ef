package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/database"
	"github.com/example/langportal/pkg/pagination"
)

// perPage is the fixed page size shared by every list endpoint
const perPage = pagination.DefaultPerPage

// pageParam reads the ?page query parameter, defaulting to 1. A non-numeric
// or non-positive value is a validation error.
func pageParam(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		validationError(c, "page must be a positive integer")
		return 0, false
	}
	return page, true
}

// idParam reads a numeric path parameter
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		validationError(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// listResponse writes the shared pagination envelope
func listResponse[T any](c *gin.Context, items []T, page, total int) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": pagination.NewMeta(page, perPage, total),
	})
}

// validationError reports a malformed request
func validationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{"kind": "validation_error", "message": message},
	})
}

// fail maps repository errors onto the HTTP error taxonomy. Every error is
// surfaced with a machine-readable kind and a human-readable message.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"kind": "not_found", "message": "record not found"},
		})
	case errors.Is(err, database.ErrInvalidReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": gin.H{"kind": "invalid_reference", "message": err.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"kind": "internal", "message": err.Error()},
		})
	}
}
