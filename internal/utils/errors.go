package utils

import (
	"errors"
	"net/http"

	"github.com/osa911/portfolio-contact/internal/api/dto/common"
	"github.com/osa911/portfolio-contact/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err with request context and writes {ok:false,message}.
// Only message reaches the client; err stays in the server log.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	if logger != nil {
		logger.LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			GetRealIP(c),
			status,
			message,
			err,
		)
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}

// IsBodyTooLarge reports whether err came from reading past the body limit
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
