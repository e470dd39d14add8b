package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/osa911/portfolio-contact/internal/api/validation"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/models"
	"github.com/osa911/portfolio-contact/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/osa911/portfolio-contact/internal/service")

// Notifier delivers a copy of a stored message. Implemented by MailService.
type Notifier interface {
	Configured() bool
	Send(ctx context.Context, msg *models.StoredMessage) error
	Verify(ctx context.Context) error
}

// Outcome of an accepted submission
type Outcome string

const (
	OutcomeSent              Outcome = "sent"
	OutcomeStored            Outcome = "stored"
	OutcomeStoredWithWarning Outcome = "stored_with_warning"
)

// Response messages
const (
	MsgSent             = "Message sent successfully."
	MsgStored           = "Message received and stored successfully."
	MsgStoredNoDelivery = "Message received and stored successfully (email delivery skipped)."
	MsgStoreFailed      = "Server error while storing message."
	MsgInternalError    = "Internal server error."
	MsgRelayNotSet      = "SMTP not configured. Form can still store messages locally."
	MsgRelayValid       = "SMTP connection/auth is valid."
)

// SubmitResult is the success side of Submit
type SubmitResult struct {
	Outcome Outcome
	Message string
	Warning string
	Record  *models.StoredMessage
}

// ErrorKind classifies a failed submission
type ErrorKind string

const (
	ErrKindValidation   ErrorKind = "validation"
	ErrKindStore        ErrorKind = "store"
	ErrKindDeliveryAuth ErrorKind = "delivery_auth"
	ErrKindDelivery     ErrorKind = "delivery"
	ErrKindInternal     ErrorKind = "internal"
)

// SubmitError is the failure side of Submit. Message is safe to show to callers.
type SubmitError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// AsSubmitError reports whether err is a *SubmitError and returns it
func AsSubmitError(err error) (*SubmitError, bool) {
	var se *SubmitError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// RelayCheck is the result of a relay diagnostic
type RelayCheck struct {
	OK         bool
	Configured bool
	Message    string
}

// ContactService runs a submission through validation, storage and delivery
type ContactService struct {
	validator        *validation.Validator
	repo             repository.MessageRepository
	notifier         Notifier
	ids              *IDGenerator
	deliveryRequired bool
	logger           *logging.Logger
}

// NewContactService creates the submission orchestrator
func NewContactService(repo repository.MessageRepository, notifier Notifier, deliveryRequired bool, logger *logging.Logger) *ContactService {
	return &ContactService{
		validator:        validation.NewValidator(),
		repo:             repo,
		notifier:         notifier,
		ids:              NewIDGenerator(),
		deliveryRequired: deliveryRequired,
		logger:           logger,
	}
}

// rejection maps a validator error to a SubmitError. Only input problems are validation failures.
func rejection(err error) *SubmitError {
	if ve, ok := validation.IsValidationError(err); ok {
		return &SubmitError{Kind: ErrKindValidation, Message: ve.Error(), Err: err}
	}
	return &SubmitError{Kind: ErrKindInternal, Message: MsgInternalError, Err: err}
}

// Submit validates, stores and then tries to deliver a submission.
// The record is always stored before any delivery attempt.
func (s *ContactService) Submit(ctx context.Context, in models.Submission) (*SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "contact.submit", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	sub, err := s.validator.ValidateSubmission(in)
	if err != nil {
		if ve, ok := validation.IsValidationError(err); ok {
			span.SetAttributes(attribute.String("contact.rejected", string(ve.Kind)))
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, "validator failure")
			s.logger.Error("Contact validator failed: %v", err)
		}
		return nil, rejection(err)
	}

	id, acceptedAt := s.ids.Next()
	record := models.NewStoredMessage(id, acceptedAt, sub)
	span.SetAttributes(attribute.String("contact.id", record.ID))

	if err := s.store(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		s.logger.Error("Contact store failed for %s: %v", record.ID, err)

		message := MsgStoreFailed
		if se, ok := repository.IsStoreError(err); ok && se.Detail != "" {
			message = "DB insert failed: " + se.Detail
		}
		return nil, &SubmitError{Kind: ErrKindStore, Message: message, Err: err}
	}

	if s.notifier == nil || !s.notifier.Configured() {
		s.logger.Info("Contact message %s stored; delivery skipped (relay not configured)", record.ID)
		return &SubmitResult{Outcome: OutcomeStored, Message: MsgStored, Record: record}, nil
	}

	if err := s.deliver(ctx, record); err != nil {
		public := PublicDeliveryMessage(err)
		s.logger.Warn("Contact message %s stored but delivery failed: %v", record.ID, err)

		if s.deliveryRequired {
			span.SetStatus(codes.Error, "required delivery failed")
			kind := ErrKindDelivery
			if IsAuthFailure(err) {
				kind = ErrKindDeliveryAuth
			}
			return nil, &SubmitError{Kind: kind, Message: public, Err: err}
		}

		return &SubmitResult{
			Outcome: OutcomeStoredWithWarning,
			Message: MsgStoredNoDelivery,
			Warning: public,
			Record:  record,
		}, nil
	}

	s.logger.Info("Contact message %s stored and delivered", record.ID)
	return &SubmitResult{Outcome: OutcomeSent, Message: MsgSent, Record: record}, nil
}

func (s *ContactService) store(ctx context.Context, record *models.StoredMessage) error {
	ctx, span := tracer.Start(ctx, "contact.store")
	defer span.End()

	if err := s.repo.Append(ctx, record); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *ContactService) deliver(ctx context.Context, record *models.StoredMessage) error {
	ctx, span := tracer.Start(ctx, "contact.deliver", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if err := s.notifier.Send(ctx, record); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("smtp.auth_failure", IsAuthFailure(err)))
		return err
	}
	return nil
}

// List returns every stored message in insertion order
func (s *ContactService) List(ctx context.Context) ([]*models.StoredMessage, error) {
	ctx, span := tracer.Start(ctx, "contact.list")
	defer span.End()

	messages, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if messages == nil {
		messages = []*models.StoredMessage{}
	}
	return messages, nil
}

// VerifyRelay runs the relay handshake. It never changes any state.
func (s *ContactService) VerifyRelay(ctx context.Context) RelayCheck {
	ctx, span := tracer.Start(ctx, "contact.verify_relay")
	defer span.End()

	if s.notifier == nil || !s.notifier.Configured() {
		return RelayCheck{OK: true, Message: MsgRelayNotSet}
	}

	if err := s.notifier.Verify(ctx); err != nil {
		span.RecordError(err)
		s.logger.Warn("SMTP verification failed: %v", err)
		return RelayCheck{Configured: true, Message: PublicDeliveryMessage(err)}
	}
	return RelayCheck{OK: true, Configured: true, Message: MsgRelayValid}
}
