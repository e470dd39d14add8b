package routes

import (
	"net/http"

	"github.com/osa911/portfolio-contact/internal/api/dto/common"
	"github.com/osa911/portfolio-contact/internal/api/middleware"
	"github.com/osa911/portfolio-contact/internal/config"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/version"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// ServiceName identifies this API in traces
const ServiceName = "portfolio-contact"

// Setup configures all route groups under prefix
func Setup(router *gin.Engine, prefix string, h *Handlers, logger *logging.Logger) {
	api := router.Group(prefix)

	SetupHealthRoutes(api, h.Health)
	SetupContactRoutes(api, h.Contact)
	SetupMessagesRoutes(api, h.Messages)
	SetupSMTPRoutes(api, h.SMTP)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.MsgNotFound))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse(common.MsgMethodNotAllow))
	})

	logger.Debug("Routes mounted under %q", prefix)
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.HandleMethodNotAllowed = true

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(ServiceName, otelgin.WithFilter(func(r *http.Request) bool {
		// Probes would drown the interesting spans
		return r.URL.Path != cfg.APIPrefix+"/health"
	})))
	router.Use(middleware.RequestLogger(logger, cfg.LogRequests))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.AllowedOrigin))
	router.Use(middleware.LimitRequestBody(cfg.MaxBodyBytes))
	router.Use(func(c *gin.Context) {
		c.Header("X-Service-Version", version.Version)
		c.Next()
	})
}
