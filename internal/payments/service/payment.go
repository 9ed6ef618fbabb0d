package service

import (
	"context"
	"errors"
	"fmt"

	paymentserrors "vetconnect/internal/payments/errors"
	"vetconnect/internal/payments/repository"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/kafka"
	"vetconnect/pkg/model"
)

// Provider event types the webhook acts on. Everything else is recorded and
// ignored.
const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"
	eventIntentCanceled  = "payment_intent.canceled"
)

// EventPublisher is the slice of the Kafka producer the payment service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type PaymentService interface {
	CreateForAppointment(ctx context.Context, appointmentID string) (*model.Payment, error)
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	GetByAppointment(ctx context.Context, appointmentID string) ([]*model.Payment, error)
	HandleProviderEvent(ctx context.Context, eventID, eventType, intentID string) error
}

type paymentService struct {
	repo         repository.PaymentRepository
	events       repository.ProviderEventRepository
	appointments AppointmentGateway
	vets         VetGateway
	intents      IntentCreator
	publisher    EventPublisher
	cfg          *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	events repository.ProviderEventRepository,
	appointments AppointmentGateway,
	vets VetGateway,
	intents IntentCreator,
	publisher EventPublisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:         repo,
		events:       events,
		appointments: appointments,
		vets:         vets,
		intents:      intents,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// CreateForAppointment opens a payment for a confirmed appointment. The
// amount is the vet's consultation fee at the time of creation.
func (s *paymentService) CreateForAppointment(ctx context.Context, appointmentID string) (*model.Payment, error) {
	if appointmentID == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != config.Confirmed {
		return nil, apperrors.Conflict(fmt.Sprintf("Payments can only be created for confirmed appointments, current status is %s", appt.Status))
	}

	vet, err := s.vets.GetByID(ctx, appt.VetID)
	if err != nil {
		return nil, err
	}
	if vet.FeeCents <= 0 {
		return nil, apperrors.InvalidInput("Veterinarian has no consultation fee configured")
	}

	intentID, err := s.intents.CreateIntent(ctx, vet.FeeCents, s.cfg.PaymentCurrency, map[string]string{
		"appointment_id": appt.ID,
		"client_id":      appt.ClientID,
		"vet_id":         appt.VetID,
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create payment intent", "appointment_id", appointmentID, "error", err)
		return nil, apperrors.Internal("Failed to create payment intent", err)
	}

	payment := &model.Payment{
		AppointmentID:   appt.ID,
		ClientID:        appt.ClientID,
		AmountCents:     vet.FeeCents,
		Currency:        s.cfg.PaymentCurrency,
		Status:          config.PaymentCreated,
		PaymentIntentID: intentID,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.cfg.Log.Error("Failed to persist payment", "appointment_id", appointmentID, "error", err)
		return nil, apperrors.Internal("Failed to create payment", err)
	}

	s.cfg.Log.Info("Payment created",
		"id", payment.ID,
		"appointment_id", appt.ID,
		"amount_cents", payment.AmountCents,
		"currency", payment.Currency,
	)
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Payment ID cannot be empty")
	}

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Payment", id)
		}
		if errors.Is(err, paymentserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid payment ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve payment", err)
	}

	return payment, nil
}

func (s *paymentService) GetByAppointment(ctx context.Context, appointmentID string) ([]*model.Payment, error) {
	if appointmentID == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	payments, err := s.repo.FindByAppointment(ctx, appointmentID)
	if err != nil {
		s.cfg.Log.Error("Failed to list payments by appointment", "appointment_id", appointmentID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve payments", err)
	}

	return payments, nil
}

// HandleProviderEvent applies one verified webhook delivery. Replayed
// deliveries are detected through the provider event record and ignored.
func (s *paymentService) HandleProviderEvent(ctx context.Context, eventID, eventType, intentID string) error {
	err := s.events.Insert(ctx, &model.ProviderEvent{
		ID:        eventID,
		EventType: eventType,
	})
	if err != nil {
		if errors.Is(err, paymentserrors.ErrDuplicateEvent) {
			s.cfg.Log.Info("Duplicate provider event ignored", "event_id", eventID, "event_type", eventType)
			return nil
		}
		return apperrors.Internal("Failed to record provider event", err)
	}

	var status, kafkaEvent string
	switch eventType {
	case eventIntentSucceeded:
		status, kafkaEvent = config.PaymentSucceeded, kafka.EventPaymentSucceeded
	case eventIntentFailed, eventIntentCanceled:
		status, kafkaEvent = config.PaymentFailed, kafka.EventPaymentFailed
	default:
		s.cfg.Log.Debug("Unhandled provider event type", "event_id", eventID, "event_type", eventType)
		return nil
	}

	payment, err := s.repo.FindByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			s.cfg.Log.Warn("Provider event references unknown payment intent", "intent_id", intentID)
			return nil
		}
		return apperrors.Internal("Failed to resolve payment for provider event", err)
	}

	if err := s.repo.UpdateStatus(ctx, payment.ID, status); err != nil {
		return apperrors.Internal("Failed to update payment status", err)
	}
	payment.Status = status

	s.publishEvent(ctx, kafkaEvent, payment)
	s.cfg.Log.Info("Payment status updated from provider event",
		"id", payment.ID,
		"status", status,
		"event_id", eventID,
	)
	return nil
}

func (s *paymentService) publishEvent(ctx context.Context, eventType string, payment *model.Payment) {
	if s.publisher == nil {
		return
	}

	event := kafka.PaymentEvent{
		PaymentID:     payment.ID,
		AppointmentID: payment.AppointmentID,
		ClientID:      payment.ClientID,
		AmountCents:   payment.AmountCents,
		Currency:      payment.Currency,
		Status:        payment.Status,
		OccurredAt:    payment.UpdatedAt,
	}

	msg := kafka.NewMessage().
		WithKey(payment.AppointmentID).
		WithValue(event).
		WithEventType(eventType).
		WithSchemaVersion(kafka.SchemaVersionV1).
		WithSource("vetconnect-payments").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish payment event",
			"event_type", eventType,
			"payment_id", payment.ID,
			"error", err,
		)
	}
}
