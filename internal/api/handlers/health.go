package handlers

import (
	"github.com/osa911/portfolio-contact/internal/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check is a liveness probe; it touches neither the store nor the relay
func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleOK(c)
}
