package common

import "github.com/osa911/portfolio-contact/internal/models"

// APIResponse is the wrapper for status and contact responses
type APIResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// MessagesResponse is the body of the message listing
type MessagesResponse struct {
	OK       bool                    `json:"ok"`
	Count    int                     `json:"count"`
	Messages []*models.StoredMessage `json:"messages"`
}

// Standard public messages
const (
	MsgInvalidBody     = "Invalid request body."
	MsgBodyTooLarge    = "Request body too large."
	MsgMethodNotAllow  = "Method Not Allowed"
	MsgNotFound        = "Not found."
	MsgInternalServer  = "Internal server error."
	MsgCannotReadStore = "Cannot read messages."
)

// NewOKResponse creates a successful response with no message
func NewOKResponse() APIResponse {
	return APIResponse{OK: true}
}

// NewMessageResponse creates a successful response with a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{OK: true, Message: message}
}

// NewWarningResponse creates a successful response that carries a warning
func NewWarningResponse(message, warning string) APIResponse {
	return APIResponse{OK: true, Message: message, Warning: warning}
}

// NewErrorResponse creates a failed response
func NewErrorResponse(message string) APIResponse {
	return APIResponse{OK: false, Message: message}
}

// NewMessagesResponse creates the listing body. A nil slice is rendered as [].
func NewMessagesResponse(messages []*models.StoredMessage) MessagesResponse {
	if messages == nil {
		messages = []*models.StoredMessage{}
	}
	return MessagesResponse{OK: true, Count: len(messages), Messages: messages}
}
