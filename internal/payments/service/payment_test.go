package service

import (
	"context"
	"testing"

	paymentserrors "vetconnect/internal/payments/errors"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/kafka"
	"vetconnect/pkg/logger"
	"vetconnect/pkg/model"
)

const (
	testApptID    = "64f1a2b3c4d5e6f7a8b9c0d1"
	testVetID     = "64f1a2b3c4d5e6f7a8b9c0d2"
	testClientID  = "64f1a2b3c4d5e6f7a8b9c0d3"
	testPaymentID = "64f1a2b3c4d5e6f7a8b9c0d4"
)

type mockPaymentRepository struct {
	createFunc       func(ctx context.Context, payment *model.Payment) error
	findByIntentFunc func(ctx context.Context, intentID string) (*model.Payment, error)
	updateStatusFunc func(ctx context.Context, id string, status string) error
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, payment)
	}
	payment.ID = testPaymentID
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	return nil, paymentserrors.ErrNotFound
}

func (m *mockPaymentRepository) FindByAppointment(ctx context.Context, appointmentID string) ([]*model.Payment, error) {
	return []*model.Payment{}, nil
}

func (m *mockPaymentRepository) FindByIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
	if m.findByIntentFunc != nil {
		return m.findByIntentFunc(ctx, intentID)
	}
	return nil, paymentserrors.ErrNotFound
}

func (m *mockPaymentRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

type mockProviderEventRepository struct {
	insertFunc func(ctx context.Context, event *model.ProviderEvent) error
	inserted   []*model.ProviderEvent
}

func (m *mockProviderEventRepository) Insert(ctx context.Context, event *model.ProviderEvent) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, event)
	}
	m.inserted = append(m.inserted, event)
	return nil
}

type mockAppointmentGateway struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Appointment, error)
}

func (m *mockAppointmentGateway) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	return m.getByIDFunc(ctx, id)
}

type mockVetGateway struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Vet, error)
}

func (m *mockVetGateway) GetByID(ctx context.Context, id string) (*model.Vet, error) {
	return m.getByIDFunc(ctx, id)
}

type mockIntentCreator struct {
	createFunc func(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error)
	calls      int
}

func (m *mockIntentCreator) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, amountCents, currency, metadata)
	}
	return "pi_test_123", nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Service: "payments-test",
		}),
		PaymentCurrency: "usd",
	}
}

func confirmedAppointment() *model.Appointment {
	return &model.Appointment{
		ID:       testApptID,
		VetID:    testVetID,
		ClientID: testClientID,
		Status:   config.Confirmed,
	}
}

func newTestService(
	repo *mockPaymentRepository,
	events *mockProviderEventRepository,
	appts *mockAppointmentGateway,
	vets *mockVetGateway,
	intents *mockIntentCreator,
	pub *mockPublisher,
) PaymentService {
	return &paymentService{
		repo:         repo,
		events:       events,
		appointments: appts,
		vets:         vets,
		intents:      intents,
		publisher:    pub,
		cfg:          testConfig(),
	}
}

func TestCreateForAppointment_Success(t *testing.T) {
	var capturedMetadata map[string]string
	intents := &mockIntentCreator{
		createFunc: func(_ context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
			if amountCents != 5000 {
				t.Errorf("expected amount 5000, got %d", amountCents)
			}
			if currency != "usd" {
				t.Errorf("expected currency usd, got %s", currency)
			}
			capturedMetadata = metadata
			return "pi_test_123", nil
		},
	}

	svc := newTestService(
		&mockPaymentRepository{},
		&mockProviderEventRepository{},
		&mockAppointmentGateway{getByIDFunc: func(_ context.Context, _ string) (*model.Appointment, error) {
			return confirmedAppointment(), nil
		}},
		&mockVetGateway{getByIDFunc: func(_ context.Context, _ string) (*model.Vet, error) {
			return &model.Vet{ID: testVetID, FeeCents: 5000, Active: true}, nil
		}},
		intents,
		&mockPublisher{},
	)

	payment, err := svc.CreateForAppointment(context.Background(), testApptID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != config.PaymentCreated {
		t.Errorf("expected status %s, got %s", config.PaymentCreated, payment.Status)
	}
	if payment.PaymentIntentID != "pi_test_123" {
		t.Errorf("expected intent pi_test_123, got %s", payment.PaymentIntentID)
	}
	if payment.AmountCents != 5000 {
		t.Errorf("expected amount 5000, got %d", payment.AmountCents)
	}
	if capturedMetadata["appointment_id"] != testApptID {
		t.Errorf("expected appointment_id metadata %s, got %s", testApptID, capturedMetadata["appointment_id"])
	}
}

func TestCreateForAppointment_NotConfirmed(t *testing.T) {
	intents := &mockIntentCreator{}
	svc := newTestService(
		&mockPaymentRepository{},
		&mockProviderEventRepository{},
		&mockAppointmentGateway{getByIDFunc: func(_ context.Context, _ string) (*model.Appointment, error) {
			appt := confirmedAppointment()
			appt.Status = config.Pending
			return appt, nil
		}},
		&mockVetGateway{getByIDFunc: func(_ context.Context, _ string) (*model.Vet, error) {
			return &model.Vet{ID: testVetID, FeeCents: 5000}, nil
		}},
		intents,
		&mockPublisher{},
	)

	_, err := svc.CreateForAppointment(context.Background(), testApptID)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if intents.calls != 0 {
		t.Errorf("expected no intent creation, got %d calls", intents.calls)
	}
}

func TestCreateForAppointment_NoFeeConfigured(t *testing.T) {
	svc := newTestService(
		&mockPaymentRepository{},
		&mockProviderEventRepository{},
		&mockAppointmentGateway{getByIDFunc: func(_ context.Context, _ string) (*model.Appointment, error) {
			return confirmedAppointment(), nil
		}},
		&mockVetGateway{getByIDFunc: func(_ context.Context, _ string) (*model.Vet, error) {
			return &model.Vet{ID: testVetID, FeeCents: 0}, nil
		}},
		&mockIntentCreator{},
		&mockPublisher{},
	)

	_, err := svc.CreateForAppointment(context.Background(), testApptID)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestHandleProviderEvent_Succeeded(t *testing.T) {
	var updatedStatus string
	repo := &mockPaymentRepository{
		findByIntentFunc: func(_ context.Context, intentID string) (*model.Payment, error) {
			return &model.Payment{
				ID:              testPaymentID,
				AppointmentID:   testApptID,
				ClientID:        testClientID,
				AmountCents:     5000,
				Currency:        "usd",
				Status:          config.PaymentCreated,
				PaymentIntentID: intentID,
			}, nil
		},
		updateStatusFunc: func(_ context.Context, id string, status string) error {
			if id != testPaymentID {
				t.Errorf("expected payment %s, got %s", testPaymentID, id)
			}
			updatedStatus = status
			return nil
		},
	}
	events := &mockProviderEventRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, events, &mockAppointmentGateway{}, &mockVetGateway{}, &mockIntentCreator{}, pub)

	err := svc.HandleProviderEvent(context.Background(), "evt_1", "payment_intent.succeeded", "pi_test_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedStatus != config.PaymentSucceeded {
		t.Errorf("expected status %s, got %s", config.PaymentSucceeded, updatedStatus)
	}
	if len(events.inserted) != 1 || events.inserted[0].ID != "evt_1" {
		t.Fatalf("expected one recorded provider event, got %v", events.inserted)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	if pub.published[0].Headers[kafka.HeaderEventType] != kafka.EventPaymentSucceeded {
		t.Errorf("expected event type %s, got %s", kafka.EventPaymentSucceeded, pub.published[0].Headers[kafka.HeaderEventType])
	}
}

func TestHandleProviderEvent_ReplayedDeliveryIgnored(t *testing.T) {
	updated := false
	repo := &mockPaymentRepository{
		updateStatusFunc: func(_ context.Context, _ string, _ string) error {
			updated = true
			return nil
		},
	}
	events := &mockProviderEventRepository{
		insertFunc: func(_ context.Context, _ *model.ProviderEvent) error {
			return paymentserrors.ErrDuplicateEvent
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, events, &mockAppointmentGateway{}, &mockVetGateway{}, &mockIntentCreator{}, pub)

	err := svc.HandleProviderEvent(context.Background(), "evt_1", "payment_intent.succeeded", "pi_test_123")
	if err != nil {
		t.Fatalf("expected replay to be swallowed, got %v", err)
	}
	if updated {
		t.Error("expected no status update on replayed delivery")
	}
	if len(pub.published) != 0 {
		t.Errorf("expected no published events, got %d", len(pub.published))
	}
}

func TestHandleProviderEvent_UnhandledTypeRecordedAndIgnored(t *testing.T) {
	updated := false
	repo := &mockPaymentRepository{
		updateStatusFunc: func(_ context.Context, _ string, _ string) error {
			updated = true
			return nil
		},
	}
	events := &mockProviderEventRepository{}
	svc := newTestService(repo, events, &mockAppointmentGateway{}, &mockVetGateway{}, &mockIntentCreator{}, &mockPublisher{})

	err := svc.HandleProviderEvent(context.Background(), "evt_2", "payment_intent.created", "pi_test_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.inserted) != 1 {
		t.Fatalf("expected the event to be recorded, got %d", len(events.inserted))
	}
	if updated {
		t.Error("expected no status update for unhandled event type")
	}
}

func TestHandleProviderEvent_UnknownIntent(t *testing.T) {
	repo := &mockPaymentRepository{
		findByIntentFunc: func(_ context.Context, _ string) (*model.Payment, error) {
			return nil, paymentserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockProviderEventRepository{}, &mockAppointmentGateway{}, &mockVetGateway{}, &mockIntentCreator{}, &mockPublisher{})

	err := svc.HandleProviderEvent(context.Background(), "evt_3", "payment_intent.payment_failed", "pi_unknown")
	if err != nil {
		t.Fatalf("expected unknown intent to be swallowed, got %v", err)
	}
}
