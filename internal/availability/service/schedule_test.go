package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	availerrors "vetconnect/internal/availability/errors"
	"vetconnect/internal/availability/validator"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/logger"
	"vetconnect/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const testVetID = "64f1a2b3c4d5e6f7a8b9c0d2"

type mockScheduleRepository struct {
	createFunc      func(ctx context.Context, sc *model.Schedule) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Schedule, error)
	findByVetIDFunc func(ctx context.Context, vetID string) (*model.Schedule, error)
	updateFunc      func(ctx context.Context, id string, sc *model.Schedule) (*mongo.UpdateResult, error)
}

func (m *mockScheduleRepository) Create(ctx context.Context, sc *model.Schedule) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sc)
	}
	return nil
}

func (m *mockScheduleRepository) FindByID(ctx context.Context, id string) (*model.Schedule, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, availerrors.ErrNotFound
}

func (m *mockScheduleRepository) FindByVetID(ctx context.Context, vetID string) (*model.Schedule, error) {
	if m.findByVetIDFunc != nil {
		return m.findByVetIDFunc(ctx, vetID)
	}
	return nil, availerrors.ErrNotFound
}

func (m *mockScheduleRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Schedule, error) {
	return []*model.Schedule{}, nil
}

func (m *mockScheduleRepository) Update(ctx context.Context, id string, sc *model.Schedule) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, sc)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockScheduleRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockScheduleRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockAppointmentGateway struct {
	searchFunc func(ctx context.Context, vetID string, from, to time.Time, limit int) ([]*model.Appointment, error)
	calls      int
}

func (m *mockAppointmentGateway) SearchByVetAndRange(ctx context.Context, vetID string, from, to time.Time, limit int) ([]*model.Appointment, error) {
	m.calls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, vetID, from, to, limit)
	}
	return []*model.Appointment{}, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Service: "availability-test",
	})
	return &config.Config{
		Log:                    log,
		DefaultStartOfDay:      "09:00",
		DefaultEndOfDay:        "17:00",
		DefaultWorkingDays:     []config.Weekday{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		DefaultSlotDurationMin: 30,
	}
}

func newTestService(repo *mockScheduleRepository, appointments *mockAppointmentGateway) *scheduleService {
	cfg := testConfig()
	return &scheduleService{
		repo:         repo,
		validator:    validator.NewScheduleValidator(cfg.Log),
		appointments: appointments,
		cfg:          cfg,
		now:          time.Now,
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	var created *model.Schedule
	repo := &mockScheduleRepository{
		createFunc: func(_ context.Context, sc *model.Schedule) error {
			created = sc
			return nil
		},
	}
	svc := newTestService(repo, &mockAppointmentGateway{})

	err := svc.Create(context.Background(), &model.Schedule{VetID: testVetID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.StartOfDay != "09:00" || created.EndOfDay != "17:00" {
		t.Errorf("expected default working hours, got %s-%s", created.StartOfDay, created.EndOfDay)
	}
	if created.SlotDurationMin != 30 {
		t.Errorf("expected default slot duration 30, got %d", created.SlotDurationMin)
	}
	if len(created.WorkingDays) != 5 {
		t.Errorf("expected 5 default working days, got %d", len(created.WorkingDays))
	}
}

func TestCreate_DuplicateVet(t *testing.T) {
	repo := &mockScheduleRepository{
		createFunc: func(_ context.Context, _ *model.Schedule) error {
			return availerrors.ErrDuplicateVet
		},
	}
	svc := newTestService(repo, &mockAppointmentGateway{})

	err := svc.Create(context.Background(), &model.Schedule{VetID: testVetID})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict for second schedule, got %v", err)
	}
}

func TestCreate_InvalidHours(t *testing.T) {
	svc := newTestService(&mockScheduleRepository{}, &mockAppointmentGateway{})

	err := svc.Create(context.Background(), &model.Schedule{
		VetID:           testVetID,
		StartOfDay:      "17:00",
		EndOfDay:        "09:00",
		WorkingDays:     []config.Weekday{"Monday"},
		SlotDurationMin: 30,
	})
	if err == nil {
		t.Fatal("expected validation error for end before start")
	}
}

func TestUpdate_MergesAndNormalizesExceptions(t *testing.T) {
	existing := &model.Schedule{
		ID:              "64f1a2b3c4d5e6f7a8b9c0aa",
		VetID:           testVetID,
		StartOfDay:      "09:00",
		EndOfDay:        "17:00",
		WorkingDays:     []config.Weekday{"Monday"},
		SlotDurationMin: 30,
	}
	var updated *model.Schedule
	repo := &mockScheduleRepository{
		findByIDFunc: func(_ context.Context, _ string) (*model.Schedule, error) {
			return existing, nil
		},
		updateFunc: func(_ context.Context, _ string, sc *model.Schedule) (*mongo.UpdateResult, error) {
			updated = sc
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo, &mockAppointmentGateway{})

	exceptions := []string{"2026-05-01", "2026-05-01", "2026-04-01"}
	err := svc.Update(context.Background(), existing.ID, &model.ScheduleUpdate{
		EndOfDay:   "18:00",
		Exceptions: &exceptions,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.EndOfDay != "18:00" {
		t.Errorf("expected end of day 18:00, got %s", updated.EndOfDay)
	}
	if updated.StartOfDay != "09:00" {
		t.Errorf("expected untouched start of day, got %s", updated.StartOfDay)
	}
	if len(updated.Exceptions) != 2 {
		t.Errorf("expected deduplicated exceptions, got %v", updated.Exceptions)
	}
}

func TestGetByVet_NotFound(t *testing.T) {
	svc := newTestService(&mockScheduleRepository{}, &mockAppointmentGateway{})

	_, err := svc.GetByVet(context.Background(), testVetID)
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFreeSlots_SubtractsBookedWindows(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := &mockScheduleRepository{
		findByVetIDFunc: func(_ context.Context, _ string) (*model.Schedule, error) {
			return &model.Schedule{
				VetID:           testVetID,
				StartOfDay:      "09:00",
				EndOfDay:        "11:00",
				WorkingDays:     []config.Weekday{"Monday"},
				SlotDurationMin: 30,
			}, nil
		},
	}
	appointments := &mockAppointmentGateway{
		searchFunc: func(_ context.Context, _ string, _, _ time.Time, _ int) ([]*model.Appointment, error) {
			return []*model.Appointment{
				{Status: config.Pending, StartTime: monday.Add(9*time.Hour + 30*time.Minute), EndTime: monday.Add(10 * time.Hour)},
				{Status: config.Cancelled, StartTime: monday.Add(10 * time.Hour), EndTime: monday.Add(10*time.Hour + 30*time.Minute)},
			}, nil
		},
	}
	svc := newTestService(repo, appointments)
	svc.now = func() time.Time { return monday.Add(-12 * time.Hour) }

	slots, err := svc.FreeSlots(context.Background(), testVetID, "2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 09:00-11:00 holds four half-hour slots; only the pending booking at
	// 09:30 blocks one. The cancelled appointment does not.
	if len(slots) != 3 {
		t.Fatalf("expected 3 free slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.StartTime.Equal(monday.Add(9*time.Hour + 30*time.Minute)) {
			t.Error("booked 09:30 slot must not be offered")
		}
	}
	if !slots[1].StartTime.Equal(monday.Add(10 * time.Hour)) {
		t.Errorf("expected the cancelled 10:00 window to be free, got start %v", slots[1].StartTime)
	}
}

func TestFreeSlots_NonWorkingDay(t *testing.T) {
	repo := &mockScheduleRepository{
		findByVetIDFunc: func(_ context.Context, _ string) (*model.Schedule, error) {
			return &model.Schedule{
				VetID:           testVetID,
				StartOfDay:      "09:00",
				EndOfDay:        "17:00",
				WorkingDays:     []config.Weekday{"Monday"},
				SlotDurationMin: 30,
			}, nil
		},
	}
	appointments := &mockAppointmentGateway{}
	svc := newTestService(repo, appointments)

	slots, err := svc.FreeSlots(context.Background(), testVetID, "2026-03-07") // Saturday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on a non-working day, got %d", len(slots))
	}
	if appointments.calls != 0 {
		t.Error("appointments service must not be queried for a non-working day")
	}
}

func TestFreeSlots_AppointmentsUnreachable(t *testing.T) {
	repo := &mockScheduleRepository{
		findByVetIDFunc: func(_ context.Context, _ string) (*model.Schedule, error) {
			return &model.Schedule{
				VetID:           testVetID,
				StartOfDay:      "09:00",
				EndOfDay:        "17:00",
				WorkingDays:     []config.Weekday{"Monday"},
				SlotDurationMin: 30,
			}, nil
		},
	}
	appointments := &mockAppointmentGateway{
		searchFunc: func(_ context.Context, _ string, _, _ time.Time, _ int) ([]*model.Appointment, error) {
			return nil, apperrors.Wrap(context.DeadlineExceeded, apperrors.CodeUnavailable, "Appointments service is unreachable", http.StatusServiceUnavailable)
		},
	}
	svc := newTestService(repo, appointments)

	_, err := svc.FreeSlots(context.Background(), testVetID, "2026-03-02")
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestWorksOn_ExceptionDay(t *testing.T) {
	svc := newTestService(&mockScheduleRepository{}, &mockAppointmentGateway{})
	sc := &model.Schedule{
		WorkingDays: []config.Weekday{"Monday"},
		Exceptions:  []string{"2026-03-02"},
	}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if svc.worksOn(sc, monday) {
		t.Error("expected exception day to be non-working")
	}
	nextMonday := monday.AddDate(0, 0, 7)
	if !svc.worksOn(sc, nextMonday) {
		t.Error("expected regular Monday to be working")
	}
	tuesday := monday.AddDate(0, 0, 1)
	if svc.worksOn(sc, tuesday) {
		t.Error("expected Tuesday to be non-working")
	}
}
