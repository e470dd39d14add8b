package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/osa911/portfolio-contact/internal/config"
	"github.com/osa911/portfolio-contact/internal/db"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/server"
	"github.com/osa911/portfolio-contact/internal/server/routes"
	"github.com/osa911/portfolio-contact/internal/telemetry"
	"github.com/osa911/portfolio-contact/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureLogDir(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Configure and get logger
	logging.Configure(logging.DefaultConfig(cfg.LogFile, strings.ToLower(cfg.LogLevel)))
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting contact backend %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracerProvider(ctx, telemetry.Config{
		ServiceName:    routes.ServiceName,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("%v", err)
		}
	}()

	// Initialize message store
	database, err := db.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize message store: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	srv, err := server.NewServer(cfg, database, logger)
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	if err := srv.Init(); err != nil {
		logger.Error("Failed to initialize server: %v", err)
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
