package handlers

import (
	"github.com/gin-gonic/gin"
)

const (
	messageUnreadableBody = "failed to extract request body parameters"
	messageSearchFailed   = "An error occurred during the search"
	messageDeleteFailed   = "An error occurred during the delete"
)

// writeResponse writes data as JSON, or only the status when data is nil.
func writeResponse(c *gin.Context, data any, statusCode int) {

	if data == nil {
		c.Status(statusCode)
		return
	}

	c.JSON(statusCode, data)
}

// writeError writes a plain-text message; error details stay in the logs.
func writeError(c *gin.Context, statusCode int, message string) {
	c.Abort()
	c.String(statusCode, message)
}
