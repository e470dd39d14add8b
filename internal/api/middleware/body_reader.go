package middleware

import (
	"net/http"

	"github.com/osa911/portfolio-contact/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes mirrors the 100kb JSON limit
const DefaultMaxBodyBytes int64 = 100 * 1024

// LimitRequestBody caps request bodies at maxBytes. Declared oversize
// bodies are rejected up front; chunked ones fail when read and are
// detected with utils.IsBodyTooLarge.
func LimitRequestBody(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(common.MsgBodyTooLarge))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
