package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/osa911/portfolio-contact/internal/api/dto/common"
	"github.com/osa911/portfolio-contact/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/service"
	"github.com/osa911/portfolio-contact/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService *service.ContactService
	logger         *logging.Logger
}

func NewContactHandler(contactService *service.ContactService, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if utils.IsBodyTooLarge(err) {
			utils.HandleAPIError(c, h.logger, err, http.StatusRequestEntityTooLarge, common.MsgBodyTooLarge)
			return
		}
		utils.HandleAPIError(c, h.logger, err, http.StatusBadRequest, common.MsgInvalidBody)
		return
	}

	result, err := h.contactService.Submit(c.Request.Context(), req.ToSubmission())
	if err != nil {
		se, ok := service.AsSubmitError(err)
		if !ok {
			utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, service.MsgStoreFailed)
			return
		}
		utils.HandleAPIError(c, h.logger, err, statusForKind(se.Kind), se.Message)
		return
	}

	if result.Warning != "" {
		utils.HandleWarning(c, result.Message, result.Warning)
		return
	}
	utils.HandleMessage(c, result.Message)
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.ErrKindValidation:
		return http.StatusBadRequest
	case service.ErrKindDeliveryAuth, service.ErrKindDelivery:
		return http.StatusUnauthorized
	case service.ErrKindStore, service.ErrKindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
