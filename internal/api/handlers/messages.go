package handlers

import (
	"net/http"

	"github.com/osa911/portfolio-contact/internal/api/dto/common"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/service"
	"github.com/osa911/portfolio-contact/internal/utils"

	"github.com/gin-gonic/gin"
)

type MessagesHandler struct {
	contactService *service.ContactService
	logger         *logging.Logger
}

func NewMessagesHandler(contactService *service.ContactService, logger *logging.Logger) *MessagesHandler {
	return &MessagesHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// List handles GET /messages
func (h *MessagesHandler) List(c *gin.Context) {
	messages, err := h.contactService.List(c.Request.Context())
	if err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, common.MsgCannotReadStore)
		return
	}
	utils.HandleMessages(c, messages)
}
