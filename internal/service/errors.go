package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for service layer
var (
	ErrRelayNotConfigured = errors.New("mail relay not configured")
)

// DeliveryAuthError means the relay rejected the credentials
type DeliveryAuthError struct {
	Err error
}

func (e *DeliveryAuthError) Error() string {
	return fmt.Sprintf("smtp authentication failed: %v", e.Err)
}

func (e *DeliveryAuthError) Unwrap() error {
	return e.Err
}

// DeliveryError covers every other relay-side fault
type DeliveryError struct {
	Stage string
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("smtp %s failed: %v", e.Stage, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsAuthFailure reports whether err is a *DeliveryAuthError
func IsAuthFailure(err error) bool {
	var ae *DeliveryAuthError
	return errors.As(err, &ae)
}

// Public messages for relay failures. Raw provider text is never returned.
const (
	msgSMTPAuthFailed     = "SMTP auth failed (535). Verify the SMTP user and app password."
	msgSMTPDeliveryFailed = "SMTP delivery failed."
)

// PublicDeliveryMessage maps a relay failure to the fixed string shown to callers
func PublicDeliveryMessage(err error) string {
	if IsAuthFailure(err) {
		return msgSMTPAuthFailed
	}
	return msgSMTPDeliveryFailed
}
