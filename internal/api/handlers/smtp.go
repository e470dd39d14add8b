package handlers

import (
	"net/http"

	"github.com/osa911/portfolio-contact/internal/api/dto/common"
	"github.com/osa911/portfolio-contact/internal/service"
	"github.com/osa911/portfolio-contact/internal/utils"

	"github.com/gin-gonic/gin"
)

type SMTPHandler struct {
	contactService *service.ContactService
}

func NewSMTPHandler(contactService *service.ContactService) *SMTPHandler {
	return &SMTPHandler{contactService: contactService}
}

// Test handles GET /smtp-test. It never sends mail.
func (h *SMTPHandler) Test(c *gin.Context) {
	check := h.contactService.VerifyRelay(c.Request.Context())
	if !check.OK {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(check.Message))
		return
	}
	utils.HandleMessage(c, check.Message)
}
