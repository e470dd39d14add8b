package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/osa911/portfolio-contact/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage(id string) *models.StoredMessage {
	return models.NewStoredMessage(id, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), models.Submission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Line one\nLine two",
	})
}

func TestFileMessageRepository_ListFreshStore(t *testing.T) {
	repo := NewFileMessageRepository(filepath.Join(t.TempDir(), "data", "messages.json"))

	messages, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestFileMessageRepository_AppendPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "messages.json")
	repo := NewFileMessageRepository(path)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Append(ctx, newMessage(fmt.Sprintf("%d", i))))
	}

	messages, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i, m := range messages {
		assert.Equal(t, fmt.Sprintf("%d", i+1), m.ID)
		assert.Equal(t, models.DeliveryStored, m.Delivery)
		assert.Equal(t, "Line one\nLine two", m.Message)
	}

	// A second repository over the same file sees the same data
	reopened, err := NewFileMessageRepository(path).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, messages, reopened)
}

func TestFileMessageRepository_WireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	repo := NewFileMessageRepository(path)

	require.NoError(t, repo.Append(context.Background(), newMessage("1714564800000")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "1714564800000",
		"createdAt": "2024-05-01T12:00:00Z",
		"delivery": "stored",
		"name": "Ada",
		"email": "ada@example.com",
		"subject": "Hello",
		"message": "Line one\nLine two"
	}]`, string(raw))
}

func TestFileMessageRepository_ConcurrentAppends(t *testing.T) {
	repo := NewFileMessageRepository(filepath.Join(t.TempDir(), "messages.json"))
	ctx := context.Background()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, newMessage(fmt.Sprintf("m-%d", i))))
		}(i)
	}
	wg.Wait()

	messages, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, messages, writers)
}

func TestFileMessageRepository_NonArrayIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0644))

	messages, err := NewFileMessageRepository(path).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestFileMessageRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":`), 0644))
	repo := NewFileMessageRepository(path)

	_, err := repo.List(context.Background())
	se, ok := IsStoreError(err)
	require.True(t, ok, "expected StoreError, got %v", err)
	assert.Equal(t, "list", se.Op)

	err = repo.Append(context.Background(), newMessage("1"))
	_, ok = IsStoreError(err)
	assert.True(t, ok)

	// The corrupt file is left untouched
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":`, string(raw))
}

func TestFileMessageRepository_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "data")
	// A regular file where the data directory should be
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	repo := NewFileMessageRepository(filepath.Join(blocker, "messages.json"))
	err := repo.Append(context.Background(), newMessage("1"))

	_, ok := IsStoreError(err)
	assert.True(t, ok, "expected StoreError, got %v", err)
}

func TestFileMessageRepository_CancelledContext(t *testing.T) {
	repo := NewFileMessageRepository(filepath.Join(t.TempDir(), "messages.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Append(ctx, newMessage("1"))
	_, ok := IsStoreError(err)
	assert.True(t, ok)
}
