package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yelloride/internal/http/middleware"
)

// RespondData wraps successful payloads in the envelope the clients expect.
func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// RespondMessage is for successes that carry a note instead of a payload.
func RespondMessage(c *gin.Context, status int, message string, extra gin.H) {
	payload := gin.H{"success": true, "message": message}
	for k, v := range extra {
		payload[k] = v
	}
	c.JSON(status, payload)
}

// RespondError sends the failure envelope with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}
