package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/portfolio-contact/internal/models"
)

const maxErrorBody = 2048

// SupabaseMessageRepository inserts messages into a hosted REST table
type SupabaseMessageRepository struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewSupabaseMessageRepository creates a repository for {baseURL}/rest/v1/{table}
func NewSupabaseMessageRepository(baseURL, apiKey, table string, client *http.Client) *SupabaseMessageRepository {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SupabaseMessageRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		table:   table,
		client:  client,
	}
}

var _ MessageRepository = (*SupabaseMessageRepository)(nil)

// insertRow is the wire contract of the table insert
type insertRow struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// remoteRow is a row as returned by the table select
type remoteRow struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Subject   string          `json:"subject"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *SupabaseMessageRepository) endpoint() string {
	return fmt.Sprintf("%s/rest/v1/%s", r.baseURL, r.table)
}

func (r *SupabaseMessageRepository) setHeaders(req *http.Request) {
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
}

// Append performs a single authenticated insert. Any non-2xx answer is a StoreError.
func (r *SupabaseMessageRepository) Append(ctx context.Context, msg *models.StoredMessage) error {
	payload, err := json.Marshal(insertRow{Name: msg.Name, Email: msg.Email, Message: msg.Message})
	if err != nil {
		return storeErr("append", fmt.Errorf("failed to marshal row: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return storeErr("append", fmt.Errorf("failed to create insert request: %w", err))
	}
	r.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := r.client.Do(req)
	if err != nil {
		return storeErr("append", fmt.Errorf("failed to send insert request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteErr("append", resp)
	}
	return nil
}

// List selects every row ordered by creation time
func (r *SupabaseMessageRepository) List(ctx context.Context) ([]*models.StoredMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint()+"?select=*&order=created_at.asc", nil)
	if err != nil {
		return nil, storeErr("list", fmt.Errorf("failed to create select request: %w", err))
	}
	r.setHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, storeErr("list", fmt.Errorf("failed to send select request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteErr("list", resp)
	}

	var rows []remoteRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, storeErr("list", fmt.Errorf("failed to decode rows: %w", err))
	}

	messages := make([]*models.StoredMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, &models.StoredMessage{
			ID:        strings.Trim(string(row.ID), `"`),
			CreatedAt: row.CreatedAt,
			Delivery:  models.DeliveryStored,
			Name:      row.Name,
			Email:     row.Email,
			Subject:   row.Subject,
			Message:   row.Message,
		})
	}
	return messages, nil
}

func remoteErr(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StoreError{
		Op:     op,
		Err:    fmt.Errorf("remote table returned status %d", resp.StatusCode),
		Detail: strings.TrimSpace(string(body)),
	}
}
