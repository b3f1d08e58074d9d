package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/hometuition/hometuition/internal/types"
)

// RequestIDMiddleware attaches a request ID to the context and response
// headers, honoring one supplied by the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
		}

		ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
