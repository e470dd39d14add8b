package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osa911/portfolio-contact/internal/config"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/repository"
)

// Database is the message store selected by STORE_DRIVER
type Database struct {
	Driver   string
	Messages repository.MessageRepository
	closeFn  func() error
}

// NewDatabase wraps an already built repository
func NewDatabase(driver string, messages repository.MessageRepository) *Database {
	return &Database{
		Driver:   driver,
		Messages: messages,
	}
}

// Initialize opens the configured store and prepares it for use.
// SQL backends get their schema created; the file backend gets its directory.
func Initialize(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Database, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile, "":
		if err := os.MkdirAll(filepath.Dir(cfg.MessagesFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		logger.Info("Using file message store at %s", cfg.MessagesFile)
		return NewDatabase(config.StoreDriverFile, repository.NewFileMessageRepository(cfg.MessagesFile)), nil

	case config.StoreDriverSupabase:
		logger.Info("Using Supabase message store (table %s)", cfg.SupabaseTable)
		repo := repository.NewSupabaseMessageRepository(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseTable, nil)
		return NewDatabase(config.StoreDriverSupabase, repo), nil

	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		dialect := repository.DialectPostgres
		if cfg.StoreDriver == config.StoreDriverSQLite {
			dialect = repository.DialectSQLite
			if err := os.MkdirAll(filepath.Dir(cfg.DatabaseURL), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		repo, err := repository.OpenSQLMessageRepository(ctx, dialect, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := repo.Ping(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to reach database: %w", err)
		}

		logger.Info("Using %s message store", cfg.StoreDriver)
		database := NewDatabase(cfg.StoreDriver, repo)
		database.closeFn = repo.Close
		return database, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases the underlying connection, if any
func (d *Database) Close() error {
	if d == nil || d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}
