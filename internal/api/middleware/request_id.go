package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID holds the id assigned to the request.
const ContextKeyRequestID = "request_id"

const headerRequestID = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a fresh
// uuid, and echoes it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, id)
		c.Header(headerRequestID, id)

		c.Next()
	}
}
