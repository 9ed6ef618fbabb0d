package service

import (
	"context"
	"errors"
	"time"

	availerrors "vetconnect/internal/availability/errors"
	"vetconnect/internal/availability/repository"
	"vetconnect/internal/availability/validator"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/model"
	"vetconnect/pkg/sanitizer"
)

type ScheduleService interface {
	Create(ctx context.Context, sc *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	GetByVet(ctx context.Context, vetID string) (*model.Schedule, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Schedule, int64, error)
	Update(ctx context.Context, id string, updates *model.ScheduleUpdate) error
	Delete(ctx context.Context, id string) error
	FreeSlots(ctx context.Context, vetID string, day string) ([]*model.Slot, error)
}

type scheduleService struct {
	repo         repository.ScheduleRepository
	validator    *validator.ScheduleValidator
	appointments AppointmentGateway
	cfg          *config.Config
	now          func() time.Time
}

func NewScheduleService(repo repository.ScheduleRepository, validator *validator.ScheduleValidator, appointments AppointmentGateway, cfg *config.Config) ScheduleService {
	return &scheduleService{
		repo:         repo,
		validator:    validator,
		appointments: appointments,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *scheduleService) Create(ctx context.Context, sc *model.Schedule) error {
	s.applyDefaults(sc)
	sc.Exceptions = sanitizer.NormalizeExceptions(sc.Exceptions)

	if err := s.validate(sc); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		if errors.Is(err, availerrors.ErrDuplicateVet) {
			return apperrors.Conflict("This vet already has a schedule")
		}
		s.cfg.Log.Error("Failed to create schedule", "vet_id", sc.VetID, "error", err)
		return apperrors.Internal("Failed to create schedule", err)
	}

	s.cfg.Log.Info("Schedule created successfully", "id", sc.ID, "vet_id", sc.VetID)
	return nil
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateRepoError(err, id)
	}

	return sc, nil
}

func (s *scheduleService) GetByVet(ctx context.Context, vetID string) (*model.Schedule, error) {
	if vetID == "" {
		return nil, apperrors.InvalidInput("Vet ID cannot be empty")
	}

	sc, err := s.repo.FindByVetID(ctx, vetID)
	if err != nil {
		if errors.Is(err, availerrors.ErrNotFound) {
			return nil, apperrors.NotFound("Schedule")
		}
		return nil, apperrors.Internal("Failed to retrieve schedule", err)
	}

	return sc, nil
}

func (s *scheduleService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Schedule, int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count schedules", "error", err)
		return nil, 0, apperrors.Internal("Failed to count schedules", err)
	}

	schedules, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list schedules", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve schedules", err)
	}

	return schedules, count, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, updates *model.ScheduleUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateRepoError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Schedule update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	merged.Exceptions = sanitizer.NormalizeExceptions(merged.Exceptions)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update schedule", "id", id, "error", err)
		return apperrors.Internal("Failed to update schedule", err)
	}

	s.cfg.Log.Info("Schedule updated successfully", "id", id)
	return nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateRepoError(err, id)
	}

	s.cfg.Log.Info("Schedule deleted successfully", "id", id)
	return nil
}

// FreeSlots enumerates bookable windows on one calendar day. Busy intervals
// come from the appointments service; pending and confirmed appointments
// both block a slot.
func (s *scheduleService) FreeSlots(ctx context.Context, vetID string, day string) ([]*model.Slot, error) {
	if vetID == "" {
		return nil, apperrors.InvalidInput("Vet ID cannot be empty")
	}

	sc, err := s.GetByVet(ctx, vetID)
	if err != nil {
		return nil, err
	}

	loc := sc.Location()
	date, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return nil, apperrors.InvalidInput("day must be a date in YYYY-MM-DD format")
	}

	if !s.worksOn(sc, date) {
		return []*model.Slot{}, nil
	}

	windowStart, err := atTimeOfDay(date, sc.StartOfDay, loc)
	if err != nil {
		return nil, apperrors.Internal("Malformed schedule start_of_day", err)
	}
	windowEnd, err := atTimeOfDay(date, sc.EndOfDay, loc)
	if err != nil {
		return nil, apperrors.Internal("Malformed schedule end_of_day", err)
	}

	busy, err := s.busyIntervals(ctx, vetID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(sc.SlotDurationMin) * time.Minute
	starts := AvailableSlots(windowStart, windowEnd, duration, duration, busy, s.now().In(loc))

	slots := make([]*model.Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, &model.Slot{
			StartTime: start,
			EndTime:   start.Add(duration),
		})
	}

	return slots, nil
}

func (s *scheduleService) worksOn(sc *model.Schedule, date time.Time) bool {
	weekday := config.Weekday(date.Weekday().String())

	works := false
	for _, d := range sc.WorkingDays {
		if d == weekday {
			works = true
			break
		}
	}
	if !works {
		return false
	}

	dayStr := date.Format("2006-01-02")
	for _, exception := range sc.Exceptions {
		if exception == dayStr {
			return false
		}
	}

	return true
}

func (s *scheduleService) busyIntervals(ctx context.Context, vetID string, windowStart, windowEnd time.Time) ([]Interval, error) {
	appts, err := s.appointments.SearchByVetAndRange(ctx, vetID, windowStart, windowEnd, config.DefaultPaginationLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch appointments for slot computation", "vet_id", vetID, "error", err)
		return nil, err
	}

	busy := make([]Interval, 0, len(appts))
	for _, a := range appts {
		if a.Status != config.Pending && a.Status != config.Confirmed {
			continue
		}
		busy = append(busy, Interval{Start: a.StartTime, End: a.EndTime})
	}

	return busy, nil
}

func atTimeOfDay(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func (s *scheduleService) applyDefaults(sc *model.Schedule) {
	if sc.StartOfDay == "" {
		sc.StartOfDay = s.cfg.DefaultStartOfDay
	}
	if sc.EndOfDay == "" {
		sc.EndOfDay = s.cfg.DefaultEndOfDay
	}
	if len(sc.WorkingDays) == 0 {
		sc.WorkingDays = s.cfg.DefaultWorkingDays
	}
	if sc.SlotDurationMin == 0 {
		sc.SlotDurationMin = s.cfg.DefaultSlotDurationMin
	}
}

func (s *scheduleService) mergeUpdates(existing *model.Schedule, updates *model.ScheduleUpdate) *model.Schedule {
	merged := *existing

	if updates.StartOfDay != "" {
		merged.StartOfDay = updates.StartOfDay
	}
	if updates.EndOfDay != "" {
		merged.EndOfDay = updates.EndOfDay
	}
	if updates.WorkingDays != nil {
		merged.WorkingDays = updates.WorkingDays
	}
	if updates.SlotDurationMin != nil {
		merged.SlotDurationMin = *updates.SlotDurationMin
	}
	if updates.Exceptions != nil {
		merged.Exceptions = *updates.Exceptions
	}
	if updates.TimeZone != "" {
		merged.TimeZone = updates.TimeZone
	}

	return &merged
}

func (s *scheduleService) validate(sc *model.Schedule) error {
	if err := s.validator.Validate(sc); err != nil {
		s.cfg.Log.Warn("Schedule validation failed", "error", err)
		return apperrors.Validation("Schedule validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *scheduleService) translateRepoError(err error, id string) error {
	if errors.Is(err, availerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Schedule", id)
	}
	if errors.Is(err, availerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid schedule ID format")
	}
	return apperrors.Internal("Schedule operation failed", err)
}
