package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/core/appctx"
)

// HeaderRequestID carries the request correlation id.
const HeaderRequestID = "X-Request-ID"

// RequestID middleware attaches a request id to the context.
// Reuses the caller-provided header when present, otherwise generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		trace := &appctx.TraceContext{RequestID: requestID}
		ctx := appctx.WithTrace(c.Request.Context(), trace)
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
