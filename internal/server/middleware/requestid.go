package middleware

import (
	"github.com/gin-gonic/gin"

	"quill/internal/pkg/id"
)

const requestIDHeader = "X-Request-ID"

// RequestID attaches a request id to every request, reusing the one
// supplied by the client when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = id.New()
		}

		c.Set("request_id", rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}
