package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/osa911/portfolio-contact/internal/api/constants"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS builds the cross-origin policy from ALLOWED_ORIGIN.
// "*" reflects whatever origin the browser sends.
func CORS(allowedOrigin string) gin.HandlerFunc {
	allowedOrigin = strings.TrimSpace(allowedOrigin)

	config := cors.DefaultConfig()
	config.AllowOriginFunc = func(origin string) bool {
		return allowedOrigin == "" || allowedOrigin == "*" || origin == allowedOrigin
	}
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID}
	config.ExposeHeaders = []string{constants.HeaderRequestID}
	config.MaxAge = 12 * time.Hour

	return cors.New(config)
}
