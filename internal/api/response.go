// Package api provides HTTP handlers and API endpoints.
//
// All handlers report failures through SanitizedErrorResponse so internal
// messages never leak to clients and every error carries a correlation ID in
// the server logs.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse returns a standardized success response.
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse returns a standardized created response.
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// ListResponse returns a standardized paginated list response.
func ListResponse(c *gin.Context, items interface{}, total int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": items,
			"total": total,
		},
	})
}
