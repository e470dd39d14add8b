package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/osa911/portfolio-contact/internal/models"
)

// FileMessageRepository keeps every message in a single JSON array on disk.
//
// Each Append rewrites the whole file. Writers are serialized by an in-process
// mutex only: two processes sharing the same file can still lose writes.
type FileMessageRepository struct {
	path string
	mu   sync.RWMutex
}

// NewFileMessageRepository creates a repository backed by the JSON file at path
func NewFileMessageRepository(path string) *FileMessageRepository {
	return &FileMessageRepository{path: path}
}

var _ MessageRepository = (*FileMessageRepository)(nil)

// List returns all messages in insertion order. A missing file yields an empty list.
func (r *FileMessageRepository) List(ctx context.Context) ([]*models.StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	messages, err := r.read()
	if err != nil {
		return nil, storeErr("list", err)
	}
	return messages, nil
}

// Append adds msg at the end of the collection
func (r *FileMessageRepository) Append(ctx context.Context, msg *models.StoredMessage) error {
	if err := ctx.Err(); err != nil {
		return storeErr("append", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.read()
	if err != nil {
		return storeErr("append", err)
	}

	messages = append(messages, msg)
	return storeErr("append", r.write(messages))
}

func (r *FileMessageRepository) read() ([]*models.StoredMessage, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*models.StoredMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []*models.StoredMessage{}, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("decode %s: invalid JSON", r.path)
	}
	// Anything other than an array is treated as an empty collection
	if raw[0] != '[' {
		return []*models.StoredMessage{}, nil
	}

	var messages []*models.StoredMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if messages == nil {
		messages = []*models.StoredMessage{}
	}
	return messages, nil
}

// write replaces the file through a temp file and rename
func (r *FileMessageRepository) write(messages []*models.StoredMessage) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
