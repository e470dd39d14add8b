package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/osa911/portfolio-contact/internal/api/constants"
	"github.com/osa911/portfolio-contact/internal/api/dto/common"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a JSON 500 and logs the stack
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("[PANIC] %s | %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.GetRealIP(c),
					c.GetString(constants.ContextKeyRequestID),
					fmt.Sprint(rec),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MsgInternalServer))
			}
		}()

		c.Next()
	}
}
