package repository

import (
	"context"

	"github.com/osa911/portfolio-contact/internal/models"
)

// MessageRepository defines the append-only store for contact messages
type MessageRepository interface {
	// Append persists a new message at the end of the collection
	Append(ctx context.Context, msg *models.StoredMessage) error
	// List returns all messages in insertion order
	List(ctx context.Context) ([]*models.StoredMessage, error)
}
