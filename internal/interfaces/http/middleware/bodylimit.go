package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momento/fulfillment/internal/interfaces/http/dto"
)

// DefaultMaxBodyBytes bounds request bodies. Offer feeds are the
// largest payload and stay well under this at the batch sizes the
// reconciler accepts.
const DefaultMaxBodyBytes int64 = 4 << 20

// BodyLimit rejects request bodies larger than maxBytes.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeInvalidInput, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
