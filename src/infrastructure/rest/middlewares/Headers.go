package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// CommonHeaders stamps every response with a correlation id. An incoming
// X-Request-ID is propagated so distributed traces line up.
func CommonHeaders(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		if id, err := uuid.NewV4(); err == nil {
			requestID = id.String()
		}
	}
	c.Writer.Header().Set("X-Request-ID", requestID)
	c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
	c.Next()
}
