package server

import (
	"net/http"

	"github.com/osa911/portfolio-contact/internal/config"
	"github.com/osa911/portfolio-contact/internal/db"
	"github.com/osa911/portfolio-contact/internal/logging"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	db         *db.Database
	logger     *logging.Logger
	httpServer *http.Server
}
