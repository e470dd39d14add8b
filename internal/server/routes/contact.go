package routes

import (
	"github.com/osa911/portfolio-contact/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the public contact form endpoint
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler) {
	router.POST("/contact", contact.Submit)
}

// SetupMessagesRoutes configures the stored message listing
func SetupMessagesRoutes(router *gin.RouterGroup, messages *handlers.MessagesHandler) {
	router.GET("/messages", messages.List)
}

// SetupSMTPRoutes configures the relay diagnostic
func SetupSMTPRoutes(router *gin.RouterGroup, smtp *handlers.SMTPHandler) {
	router.GET("/smtp-test", smtp.Test)
}
