package models

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the createdAt wire form: UTC with exactly three fractional digits
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Submission is the raw contact-form input
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contactemail"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type DeliveryStatus string

// DeliveryStored records that persistence succeeded. The email outcome is never written back.
const DeliveryStored DeliveryStatus = "stored"

// StoredMessage is a validated submission plus persistence metadata
type StoredMessage struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Delivery  DeliveryStatus `json:"delivery"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Subject   string         `json:"subject"`
	Message   string         `json:"message"`
}

// NewStoredMessage wraps an already validated submission
func NewStoredMessage(id string, createdAt time.Time, s Submission) *StoredMessage {
	return &StoredMessage{
		ID:        id,
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
		Delivery:  DeliveryStored,
		Name:      s.Name,
		Email:     s.Email,
		Subject:   s.Subject,
		Message:   s.Message,
	}
}

// MarshalJSON writes createdAt in TimestampLayout so whole seconds keep their ".000"
func (m StoredMessage) MarshalJSON() ([]byte, error) {
	type alias StoredMessage
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"createdAt"`
	}{
		alias:     alias(m),
		CreatedAt: m.CreatedAt.UTC().Format(TimestampLayout),
	})
}
