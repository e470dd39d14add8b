package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/osa911/portfolio-contact/internal/api/handlers"
	"github.com/osa911/portfolio-contact/internal/config"
	"github.com/osa911/portfolio-contact/internal/db"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/server/routes"
	"github.com/osa911/portfolio-contact/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// NewServer creates a new server instance
func NewServer(cfg *config.Config, database *db.Database, logger *logging.Logger) (*Server, error) {
	if database == nil || database.Messages == nil {
		return nil, fmt.Errorf("message store is required")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Request logging goes through our own logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	return &Server{
		router: router,
		cfg:    cfg,
		db:     database,
		logger: logger,
	}, nil
}

// Init wires services, middleware and routes
func (s *Server) Init() error {
	mailService := service.NewMailService(s.cfg, s.logger)
	if mailService.Configured() {
		s.logger.Info("SMTP relay configured (%s, required=%v)", mailService.Relay(), s.cfg.SMTP.Required)
	} else {
		s.logger.Warn("SMTP relay not configured; messages will only be stored")
	}

	contactService := service.NewContactService(s.db.Messages, mailService, s.cfg.SMTP.Required, s.logger)

	h := &routes.Handlers{
		Health:   handlers.NewHealthHandler(),
		Contact:  handlers.NewContactHandler(contactService, s.logger),
		Messages: handlers.NewMessagesHandler(contactService, s.logger),
		SMTP:     handlers.NewSMTPHandler(contactService),
	}

	routes.SetupGlobalMiddleware(s.router, s.cfg, s.logger)
	routes.Setup(s.router, s.cfg.APIPrefix, h, s.logger)

	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort("", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Leaves room for a slow SMTP relay on required delivery
		WriteTimeout: s.cfg.SMTP.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Contact backend listening on :%s%s", s.cfg.Port, s.cfg.APIPrefix)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
