package utils

import (
	"net/http"

	"github.com/osa911/portfolio-contact/internal/api/dto/common"
	"github.com/osa911/portfolio-contact/internal/models"

	"github.com/gin-gonic/gin"
)

// HandleOK sends {ok:true}
func HandleOK(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewOKResponse())
}

// HandleMessage sends a success response with just a message
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}

// HandleWarning sends a success response with a message and a warning
func HandleWarning(c *gin.Context, message, warning string) {
	c.JSON(http.StatusOK, common.NewWarningResponse(message, warning))
}

// HandleMessages sends the stored message listing
func HandleMessages(c *gin.Context, messages []*models.StoredMessage) {
	c.JSON(http.StatusOK, common.NewMessagesResponse(messages))
}
