package middlewares

import (
	"errors"
	"net/http"

	domainErrors "notification-dispatch-api/src/domain/errors"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the context into JSON responses.
// Internal error text never reaches the client; the correlation id header set
// by CommonHeaders is echoed in the body for log correlation.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors[0].Err
		requestID := c.Writer.Header().Get("X-Request-ID")

		var appErr *domainErrors.AppError
		if errors.As(err, &appErr) {
			c.AbortWithStatusJSON(statusForType(appErr.Type), gin.H{
				"error":      messageForType(appErr.Type),
				"request_id": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal Server Error",
			"request_id": requestID,
		})
	}
}

func statusForType(errType string) int {
	switch errType {
	case domainErrors.NotFound:
		return http.StatusNotFound
	case domainErrors.ValidationError:
		return http.StatusBadRequest
	case domainErrors.ResourceAlreadyExists:
		return http.StatusConflict
	case domainErrors.NotAuthorized:
		return http.StatusForbidden
	case domainErrors.TransportError:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func messageForType(errType string) string {
	switch errType {
	case domainErrors.NotFound:
		return "record not found"
	case domainErrors.ValidationError:
		return "validation error"
	case domainErrors.ResourceAlreadyExists:
		return "resource already exists"
	case domainErrors.NotAuthorized:
		return "not authorized"
	case domainErrors.TransportError:
		return "upstream transport unavailable"
	}
	return "Internal Server Error"
}
