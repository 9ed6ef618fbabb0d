package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	apptserrors "vetconnect/internal/appointments/errors"
	"vetconnect/internal/appointments/repository"
	"vetconnect/internal/appointments/validator"
	"vetconnect/pkg/config"
	mongotx "vetconnect/pkg/db/mongo"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/kafka"
	"vetconnect/pkg/logger"
	"vetconnect/pkg/model"
	"vetconnect/pkg/sealer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testVetID    = "65a0f1e2b3c4d5e6f7a8b9c0"
	testClientID = "65a0f1e2b3c4d5e6f7a8b9c1"
	testPetID    = "65a0f1e2b3c4d5e6f7a8b9c2"
	testApptID   = "65a0f1e2b3c4d5e6f7a8b9c3"
)

// Monday 2026-03-02 08:00 UTC. Booking windows in the tests are relative to
// this instant.
var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type mockAppointmentRepository struct {
	createFunc     func(ctx context.Context, appt *model.Appointment) error
	findByIDFunc   func(ctx context.Context, id string) (*model.Appointment, error)
	updateFunc     func(ctx context.Context, id string, appt *model.Appointment) (*mongo.UpdateResult, error)
	findActiveFunc func(ctx context.Context, vetID string, startTime, endTime time.Time, limit int) ([]*model.Appointment, error)
	searchFunc     func(ctx context.Context, query *repository.SearchQuery, limit int, offset int64) ([]*model.Appointment, error)
}

func (m *mockAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, appt)
	}
	appt.ID = testApptID
	return nil
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) Update(ctx context.Context, id string, appt *model.Appointment) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, appt)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockAppointmentRepository) FindActiveByVetAndWindow(ctx context.Context, vetID string, startTime, endTime time.Time, limit int) ([]*model.Appointment, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, vetID, startTime, endTime, limit)
	}
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) Search(ctx context.Context, query *repository.SearchQuery, limit int, offset int64) ([]*model.Appointment, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit, offset)
	}
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) CountBySearch(ctx context.Context, query *repository.SearchQuery) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) FindUpcoming(ctx context.Context, vetID string, now time.Time, limit int, offset int64) ([]*model.Appointment, error) {
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) CountUpcoming(ctx context.Context, vetID string, now time.Time) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) CountByStatus(ctx context.Context, vetID string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *mockAppointmentRepository) MarkNoShows(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleted    []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

func (m *mockSlotLockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type mockScheduleGateway struct {
	getByVetFunc func(ctx context.Context, vetID string) (*model.Schedule, error)
}

func (m *mockScheduleGateway) GetByVet(ctx context.Context, vetID string) (*model.Schedule, error) {
	if m.getByVetFunc != nil {
		return m.getByVetFunc(ctx, vetID)
	}
	return weekdaySchedule(), nil
}

type mockPetGateway struct {
	getByIDFunc func(ctx context.Context, petID string) (*model.Pet, error)
}

func (m *mockPetGateway) GetByID(ctx context.Context, petID string) (*model.Pet, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, petID)
	}
	return &model.Pet{ID: testPetID, OwnerID: testClientID, Active: true}, nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func weekdaySchedule() *model.Schedule {
	return &model.Schedule{
		ID:              "65a0f1e2b3c4d5e6f7a8b9c4",
		VetID:           testVetID,
		StartOfDay:      "09:00",
		EndOfDay:        "17:00",
		WorkingDays:     []config.Weekday{config.Monday, config.Tuesday, config.Wednesday, config.Thursday, config.Friday},
		SlotDurationMin: 30,
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		MaxAdvanceDays:  180,
		SlotLockTTL:     10 * time.Second,
		MeetingLinkBase: "https://meet.vetconnect.example",
	}
}

func newTestService(t *testing.T, repo *mockAppointmentRepository, locks *mockSlotLockRepository, schedules *mockScheduleGateway, pets *mockPetGateway, publisher *mockPublisher) *appointmentService {
	t.Helper()
	cfg := testConfig(t)
	return &appointmentService{
		repo:      repo,
		lockRepo:  locks,
		validator: validator.NewAppointmentValidator(cfg.Log),
		schedules: schedules,
		pets:      pets,
		publisher: publisher,
		cfg:       cfg,
		now:       func() time.Time { return testNow },
	}
}

func validRequest() *model.Appointment {
	return &model.Appointment{
		VetID:     testVetID,
		ClientID:  testClientID,
		PetID:     testPetID,
		StartTime: testNow.Add(2 * time.Hour), // 10:00, inside working hours
		EndTime:   testNow.Add(2*time.Hour + 30*time.Minute),
		Reason:    "Annual checkup",
	}
}

func TestRequest_Success(t *testing.T) {
	repo := &mockAppointmentRepository{}
	locks := &mockSlotLockRepository{}
	publisher := &mockPublisher{}
	svc := newTestService(t, repo, locks, &mockScheduleGateway{}, &mockPetGateway{}, publisher)

	appt := validRequest()
	if err := svc.Request(context.Background(), appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if appt.Status != config.Pending {
		t.Errorf("expected status %q, got %q", config.Pending, appt.Status)
	}
	if appt.ID == "" {
		t.Error("expected appointment ID to be assigned")
	}
	if len(locks.deleted) != 1 {
		t.Errorf("expected slot lock to be released once, got %d releases", len(locks.deleted))
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	msg := publisher.published[0]
	if msg.Key != testVetID {
		t.Errorf("expected event keyed by vet ID, got %q", msg.Key)
	}
	if got := msg.Headers[kafka.HeaderEventType]; got != kafka.EventAppointmentRequested {
		t.Errorf("expected event type %q, got %q", kafka.EventAppointmentRequested, got)
	}
}

func TestRequest_OverlapConflict(t *testing.T) {
	created := false
	repo := &mockAppointmentRepository{
		createFunc: func(ctx context.Context, appt *model.Appointment) error {
			created = true
			return nil
		},
		findActiveFunc: func(ctx context.Context, vetID string, startTime, endTime time.Time, limit int) ([]*model.Appointment, error) {
			return []*model.Appointment{
				{
					ID:        "65a0f1e2b3c4d5e6f7a8b9c9",
					VetID:     vetID,
					Status:    config.Confirmed,
					StartTime: testNow.Add(2 * time.Hour),
					EndTime:   testNow.Add(3 * time.Hour),
				},
			}, nil
		},
	}
	locks := &mockSlotLockRepository{}
	svc := newTestService(t, repo, locks, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	err := svc.Request(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %q, got %q", apperrors.CodeConflict, appErr.Code)
	}
	if created {
		t.Error("appointment must not be created when the window overlaps")
	}
	if len(locks.deleted) != 1 {
		t.Error("slot lock must be released even when the booking conflicts")
	}
}

func TestRequest_SlotLockHeld(t *testing.T) {
	created := false
	repo := &mockAppointmentRepository{
		createFunc: func(ctx context.Context, appt *model.Appointment) error {
			created = true
			return nil
		},
	}
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	svc := newTestService(t, repo, locks, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	// The in-flight holder booked 10:00-10:30; this request wants the
	// misaligned 10:15-10:45. The per-vet lock must still block it.
	appt := validRequest()
	appt.StartTime = testNow.Add(2*time.Hour + 15*time.Minute)
	appt.EndTime = appt.StartTime.Add(30 * time.Minute)

	err := svc.Request(context.Background(), appt)
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %q, got %q", apperrors.CodeConflict, appErr.Code)
	}
	if created {
		t.Error("appointment must not be created while the vet lock is held")
	}
}

func TestRequest_OverlappingWindowsContendOnOneLock(t *testing.T) {
	var acquired []string
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			acquired = append(acquired, lock.ID)
			return lock, nil
		},
	}
	svc := newTestService(t, &mockAppointmentRepository{}, locks, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	first := validRequest() // 10:00-10:30
	if err := svc.Request(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := validRequest()
	second.StartTime = testNow.Add(2*time.Hour + 15*time.Minute) // 10:15-10:45
	second.EndTime = second.StartTime.Add(30 * time.Minute)
	if err := svc.Request(context.Background(), second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Overlapping windows with different start times must map to the same
	// lock document, otherwise two concurrent requests take disjoint locks
	// and both transactions commit intersecting windows.
	if len(acquired) != 2 {
		t.Fatalf("expected 2 lock acquisitions, got %d", len(acquired))
	}
	if acquired[0] != acquired[1] {
		t.Errorf("misaligned windows took different locks: %q vs %q", acquired[0], acquired[1])
	}
}

func TestRequest_PastWindow(t *testing.T) {
	svc := newTestService(t, &mockAppointmentRepository{}, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	appt := validRequest()
	appt.StartTime = testNow.Add(-2 * time.Hour)
	appt.EndTime = testNow.Add(-90 * time.Minute)

	err := svc.Request(context.Background(), appt)
	if err == nil {
		t.Fatal("expected invalid window error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidWindow {
		t.Errorf("expected code %q, got %q", apperrors.CodeInvalidWindow, appErr.Code)
	}
}

func TestRequest_BeyondAdvanceHorizon(t *testing.T) {
	svc := newTestService(t, &mockAppointmentRepository{}, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	appt := validRequest()
	appt.StartTime = testNow.AddDate(0, 0, 200)
	appt.EndTime = appt.StartTime.Add(30 * time.Minute)

	err := svc.Request(context.Background(), appt)
	if err == nil {
		t.Fatal("expected invalid window error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidWindow {
		t.Errorf("expected code %q, got %q", apperrors.CodeInvalidWindow, appErr.Code)
	}
}

func TestRequest_OutsideWorkingHours(t *testing.T) {
	svc := newTestService(t, &mockAppointmentRepository{}, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	appt := validRequest()
	appt.StartTime = testNow.Add(10 * time.Hour) // 18:00, past end_of_day
	appt.EndTime = appt.StartTime.Add(30 * time.Minute)

	err := svc.Request(context.Background(), appt)
	if err == nil {
		t.Fatal("expected invalid window error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidWindow {
		t.Errorf("expected code %q, got %q", apperrors.CodeInvalidWindow, appErr.Code)
	}
}

func TestRequest_ExceptionDay(t *testing.T) {
	schedules := &mockScheduleGateway{
		getByVetFunc: func(ctx context.Context, vetID string) (*model.Schedule, error) {
			sc := weekdaySchedule()
			sc.Exceptions = []string{"2026-03-02"}
			return sc, nil
		},
	}
	svc := newTestService(t, &mockAppointmentRepository{}, &mockSlotLockRepository{}, schedules, &mockPetGateway{}, &mockPublisher{})

	err := svc.Request(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected invalid window error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidWindow {
		t.Errorf("expected code %q, got %q", apperrors.CodeInvalidWindow, appErr.Code)
	}
}

func TestRequest_PetOwnershipMismatch(t *testing.T) {
	pets := &mockPetGateway{
		getByIDFunc: func(ctx context.Context, petID string) (*model.Pet, error) {
			return &model.Pet{ID: petID, OwnerID: "65a0f1e2b3c4d5e6f7a8b9ff", Active: true}, nil
		},
	}
	svc := newTestService(t, &mockAppointmentRepository{}, &mockSlotLockRepository{}, &mockScheduleGateway{}, pets, &mockPublisher{})

	err := svc.Request(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected forbidden error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected code %q, got %q", apperrors.CodeForbidden, appErr.Code)
	}
}

func TestConfirm_MintsMeetingCredentials(t *testing.T) {
	pending := validRequest()
	pending.ID = testApptID
	pending.Status = config.Pending

	var updated *model.Appointment
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			clone := *pending
			return &clone, nil
		},
		updateFunc: func(ctx context.Context, id string, appt *model.Appointment) (*mongo.UpdateResult, error) {
			updated = appt
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(t, repo, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, publisher)

	appt, err := svc.Confirm(context.Background(), testApptID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if appt.Status != config.Confirmed {
		t.Errorf("expected status %q, got %q", config.Confirmed, appt.Status)
	}
	if updated == nil {
		t.Fatal("expected appointment to be persisted")
	}
	if appt.MeetingID == "" || appt.MeetingPassword == "" {
		t.Error("expected meeting ID and password to be minted")
	}
	if !strings.HasPrefix(appt.MeetingLink, "https://meet.vetconnect.example/") {
		t.Errorf("unexpected meeting link: %s", appt.MeetingLink)
	}

	apptID, vetID, err := sealer.ParseMeetingToken(appt.MeetingID)
	if err != nil {
		t.Fatalf("meeting token does not parse: %v", err)
	}
	if apptID != testApptID || vetID != testVetID {
		t.Errorf("meeting token carries wrong identity: %s / %s", apptID, vetID)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	if got := publisher.published[0].Headers[kafka.HeaderEventType]; got != kafka.EventAppointmentConfirmed {
		t.Errorf("expected event type %q, got %q", kafka.EventAppointmentConfirmed, got)
	}
}

func TestConfirm_NotPending(t *testing.T) {
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			appt := validRequest()
			appt.ID = testApptID
			appt.Status = config.Cancelled
			return appt, nil
		},
	}
	svc := newTestService(t, repo, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	_, err := svc.Confirm(context.Background(), testApptID)
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %q, got %q", apperrors.CodeConflict, appErr.Code)
	}
}

func TestCancel_RecordsFieldsAndPublishes(t *testing.T) {
	var updated *model.Appointment
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			appt := validRequest()
			appt.ID = testApptID
			appt.Status = config.Confirmed
			return appt, nil
		},
		updateFunc: func(ctx context.Context, id string, appt *model.Appointment) (*mongo.UpdateResult, error) {
			updated = appt
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(t, repo, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, publisher)

	req := &model.CancelRequest{
		CancelledBy: testClientID,
		Reason:      config.CancelClientRequest,
		Note:        "Travelling that week",
	}
	if err := svc.Cancel(context.Background(), testApptID, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("expected appointment to be persisted")
	}
	if updated.Status != config.Cancelled {
		t.Errorf("expected status %q, got %q", config.Cancelled, updated.Status)
	}
	if updated.CancelledBy != testClientID || updated.CancellationReason != config.CancelClientRequest {
		t.Error("cancellation fields not recorded")
	}
	if updated.CancelledAt == nil {
		t.Error("expected cancelled_at to be set")
	}
	if got := publisher.published[0].Headers[kafka.HeaderEventType]; got != kafka.EventAppointmentCancelled {
		t.Errorf("expected event type %q, got %q", kafka.EventAppointmentCancelled, got)
	}
}

// TestCancel_FreesWindowForRebooking drives the full booking cycle against a
// stateful repo whose overlap scan applies the same status filter as the
// mongo query: only pending and confirmed appointments occupy the schedule.
func TestCancel_FreesWindowForRebooking(t *testing.T) {
	store := make(map[string]*model.Appointment)
	nextID := 0
	repo := &mockAppointmentRepository{
		createFunc: func(ctx context.Context, appt *model.Appointment) error {
			nextID++
			appt.ID = fmt.Sprintf("65a0f1e2b3c4d5e6f7a8b9d%d", nextID)
			clone := *appt
			store[appt.ID] = &clone
			return nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			appt, ok := store[id]
			if !ok {
				return nil, apptserrors.ErrNotFound
			}
			clone := *appt
			return &clone, nil
		},
		updateFunc: func(ctx context.Context, id string, appt *model.Appointment) (*mongo.UpdateResult, error) {
			clone := *appt
			store[id] = &clone
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
		findActiveFunc: func(ctx context.Context, vetID string, startTime, endTime time.Time, limit int) ([]*model.Appointment, error) {
			var active []*model.Appointment
			for _, a := range store {
				if a.VetID != vetID {
					continue
				}
				if a.Status != config.Pending && a.Status != config.Confirmed {
					continue
				}
				if a.StartTime.Before(endTime) && a.EndTime.After(startTime) {
					active = append(active, a)
				}
			}
			return active, nil
		},
	}
	svc := newTestService(t, repo, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	first := validRequest()
	if err := svc.Request(context.Background(), first); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	blocked := validRequest()
	err := svc.Request(context.Background(), blocked)
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict for the occupied window, got %v", err)
	}

	err = svc.Cancel(context.Background(), first.ID, &model.CancelRequest{
		CancelledBy: testClientID,
		Reason:      config.CancelClientRequest,
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	rebooked := validRequest()
	if err := svc.Request(context.Background(), rebooked); err != nil {
		t.Fatalf("cancelled window must be bookable again, got %v", err)
	}
	if rebooked.ID == first.ID {
		t.Error("rebooking must create a new appointment")
	}
}

func TestCancel_TerminalStatus(t *testing.T) {
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			appt := validRequest()
			appt.ID = testApptID
			appt.Status = config.Completed
			return appt, nil
		},
	}
	svc := newTestService(t, repo, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	err := svc.Cancel(context.Background(), testApptID, &model.CancelRequest{
		CancelledBy: testClientID,
		Reason:      config.CancelOther,
	})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %q, got %q", apperrors.CodeConflict, appErr.Code)
	}
}

func TestReschedule_ExcludesSelfFromOverlapCheck(t *testing.T) {
	existing := validRequest()
	existing.ID = testApptID
	existing.Status = config.Confirmed

	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			clone := *existing
			return &clone, nil
		},
		findActiveFunc: func(ctx context.Context, vetID string, startTime, endTime time.Time, limit int) ([]*model.Appointment, error) {
			// The stored copy of the appointment itself intersects its new window.
			return []*model.Appointment{existing}, nil
		},
	}
	locks := &mockSlotLockRepository{}
	svc := newTestService(t, repo, locks, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	req := &model.RescheduleRequest{
		StartTime: testNow.Add(2*time.Hour + 15*time.Minute),
		EndTime:   testNow.Add(2*time.Hour + 45*time.Minute),
	}
	appt, err := svc.Reschedule(context.Background(), testApptID, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !appt.StartTime.Equal(req.StartTime) || !appt.EndTime.Equal(req.EndTime) {
		t.Error("window was not moved")
	}
	if appt.Status != config.Confirmed {
		t.Errorf("status must survive a reschedule, got %q", appt.Status)
	}
	if len(locks.deleted) != 1 {
		t.Error("slot lock for the new window must be released")
	}
}

func TestUpdate_RejectsWindowChange(t *testing.T) {
	svc := newTestService(t, &mockAppointmentRepository{}, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	newStart := testNow.Add(3 * time.Hour)
	err := svc.Update(context.Background(), testApptID, &model.AppointmentUpdate{StartTime: &newStart})
	if err == nil {
		t.Fatal("expected invalid input error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %q, got %q", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestToday_ResolvesDayInScheduleTimezone(t *testing.T) {
	schedules := &mockScheduleGateway{
		getByVetFunc: func(ctx context.Context, vetID string) (*model.Schedule, error) {
			sc := weekdaySchedule()
			sc.TimeZone = "Australia/Sydney"
			return sc, nil
		},
	}
	var captured *repository.SearchQuery
	repo := &mockAppointmentRepository{
		searchFunc: func(ctx context.Context, query *repository.SearchQuery, limit int, offset int64) ([]*model.Appointment, error) {
			captured = query
			return []*model.Appointment{}, nil
		},
	}
	svc := newTestService(t, repo, &mockSlotLockRepository{}, schedules, &mockPetGateway{}, &mockPublisher{})
	// 23:00 UTC on March 2nd is already mid-morning on March 3rd in Sydney.
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC) }

	if _, err := svc.Today(context.Background(), testVetID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured == nil || captured.StartTime == nil || captured.EndTime == nil {
		t.Fatal("expected a bounded search query")
	}

	sydney, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	wantStart := time.Date(2026, 3, 3, 0, 0, 0, 0, sydney)
	if !captured.StartTime.Equal(wantStart) {
		t.Errorf("expected day start %v, got %v", wantStart, *captured.StartTime)
	}
	if !captured.EndTime.Equal(wantStart.Add(24 * time.Hour)) {
		t.Errorf("expected day end %v, got %v", wantStart.Add(24*time.Hour), *captured.EndTime)
	}
}

func TestStats_FillsMissingStatuses(t *testing.T) {
	repo := &mockAppointmentRepository{}
	svc := newTestService(t, repo, &mockSlotLockRepository{}, &mockScheduleGateway{}, &mockPetGateway{}, &mockPublisher{})

	stats, err := svc.Stats(context.Background(), testVetID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, status := range []string{config.Pending, config.Confirmed, config.InProgress, config.Completed, config.Cancelled, config.NoShow} {
		if _, ok := stats[status]; !ok {
			t.Errorf("expected explicit zero for status %q", status)
		}
	}
}
