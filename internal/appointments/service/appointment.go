package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	apptserrors "vetconnect/internal/appointments/errors"
	"vetconnect/internal/appointments/repository"
	"vetconnect/internal/appointments/validator"
	"vetconnect/pkg/config"
	apperrors "vetconnect/pkg/errors"
	"vetconnect/pkg/kafka"
	"vetconnect/pkg/model"
	"vetconnect/pkg/sanitizer"
	"vetconnect/pkg/sealer"

	"go.mongodb.org/mongo-driver/mongo"
)

// maxOverlapCheck bounds how many overlapping candidates one conflict check
// fetches. A single vet cannot have more active appointments than this inside
// one window.
const maxOverlapCheck = 30

// EventPublisher is the slice of the Kafka producer the booking engine needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type AppointmentService interface {
	Request(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error)
	Search(ctx context.Context, query *repository.SearchQuery, limit int, offset int64) ([]*model.Appointment, int64, error)
	Update(ctx context.Context, id string, updates *model.AppointmentUpdate) error
	Confirm(ctx context.Context, id string) (*model.Appointment, error)
	Start(ctx context.Context, id string) error
	Complete(ctx context.Context, id string, outcome *model.CompletionRequest) error
	Cancel(ctx context.Context, id string, req *model.CancelRequest) error
	Reschedule(ctx context.Context, id string, req *model.RescheduleRequest) (*model.Appointment, error)
	Upcoming(ctx context.Context, vetID string, limit int, offset int64) ([]*model.Appointment, int64, error)
	Today(ctx context.Context, vetID string) ([]*model.Appointment, error)
	Stats(ctx context.Context, vetID string) (map[string]int64, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.AppointmentValidator
	schedules ScheduleGateway
	pets      PetGateway
	publisher EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.AppointmentValidator,
	schedules ScheduleGateway,
	pets PetGateway,
	publisher EventPublisher,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		schedules: schedules,
		pets:      pets,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Request books a tentative appointment. The window is validated against the
// vet's schedule, a per-vet advisory lock serializes concurrent booking
// requests, and a transactional overlap check guarantees at most one active
// appointment per vet per window.
func (s *appointmentService) Request(ctx context.Context, appt *model.Appointment) error {
	s.applyDefaults(appt)
	s.sanitize(appt)
	if err := s.validate(appt); err != nil {
		return err
	}

	if err := s.verifyPetOwnership(ctx, appt); err != nil {
		return err
	}
	if err := s.verifyWindow(ctx, appt.VetID, appt.StartTime, appt.EndTime); err != nil {
		return err
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireSlotLock(ctx, appt.VetID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, appt); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, appt); err != nil {
			return apperrors.Internal("Failed to create appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to request appointment", "error", err)
		return err
	}

	s.publishEvent(ctx, kafka.EventAppointmentRequested, appt)
	s.cfg.Log.Info("Appointment requested successfully",
		"id", appt.ID,
		"vet_id", appt.VetID,
		"client_id", appt.ClientID,
		"start_time", appt.StartTime,
	)
	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateRepoError(err, id)
	}

	return appt, nil
}

func (s *appointmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appts []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = apperrors.Internal("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appts, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appts, count, nil
}

func (s *appointmentService) Search(ctx context.Context, query *repository.SearchQuery, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appts []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(ctx, query)
		if err != nil {
			s.cfg.Log.Error("Failed to count appointments by search", "vet_id", query.VetID, "error", err)
			errCount = apperrors.Internal("Failed to count appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		appts, err = s.repo.Search(ctx, query, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search appointments",
				"vet_id", query.VetID,
				"client_id", query.ClientID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search appointments", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appts, count, nil
}

// Update changes consultation details. The window is deliberately immutable
// here; moving an appointment goes through Reschedule so it gets the same
// locking and conflict checks as a fresh request.
func (s *appointmentService) Update(ctx context.Context, id string, updates *model.AppointmentUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}
	if updates.StartTime != nil || updates.EndTime != nil {
		return apperrors.InvalidInput("Use the reschedule operation to change the appointment window")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateRepoError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Appointment update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, apptserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		return apperrors.Internal("Failed to update appointment", err)
	}

	s.cfg.Log.Info("Appointment updated successfully", "id", id)
	return nil
}

// Confirm finalizes a pending appointment. The overlap check runs again inside
// the transaction: a competing request may have been confirmed since the
// original booking.
func (s *appointmentService) Confirm(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != config.Pending {
		return nil, apperrors.Conflict(fmt.Sprintf("Only pending appointments can be confirmed, current status is %s", appt.Status))
	}

	token, err := sealer.CreateMeetingToken(appt.ID, appt.VetID)
	if err != nil {
		return nil, apperrors.Internal("Failed to create meeting token", err)
	}
	password, err := sealer.GeneratePassword()
	if err != nil {
		return nil, apperrors.Internal("Failed to generate meeting password", err)
	}

	appt.Status = config.Confirmed
	appt.MeetingID = token
	appt.MeetingLink = s.cfg.MeetingLinkBase + "/" + token
	appt.MeetingPassword = password

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, appt); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, appt); err != nil {
			return apperrors.Internal("Failed to confirm appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to confirm appointment", "id", id, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, kafka.EventAppointmentConfirmed, appt)
	s.cfg.Log.Info("Appointment confirmed successfully", "id", id, "vet_id", appt.VetID)
	return appt, nil
}

func (s *appointmentService) Start(ctx context.Context, id string) error {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status != config.Confirmed {
		return apperrors.Conflict(fmt.Sprintf("Only confirmed appointments can be started, current status is %s", appt.Status))
	}

	appt.Status = config.InProgress
	if _, err := s.repo.Update(ctx, id, appt); err != nil {
		return apperrors.Internal("Failed to start appointment", err)
	}

	s.publishEvent(ctx, kafka.EventAppointmentStarted, appt)
	s.cfg.Log.Info("Appointment started", "id", id, "vet_id", appt.VetID)
	return nil
}

func (s *appointmentService) Complete(ctx context.Context, id string, outcome *model.CompletionRequest) error {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status != config.InProgress {
		return apperrors.Conflict(fmt.Sprintf("Only in-progress appointments can be completed, current status is %s", appt.Status))
	}

	if outcome != nil {
		if err := s.validator.ValidateCompletion(outcome); err != nil {
			s.cfg.Log.Warn("Completion validation failed", "id", id, "error", err)
			return apperrors.Validation("Invalid completion input", map[string]any{"error": err.Error()})
		}
		appt.Notes = outcome.Notes
		appt.Prescription = outcome.Prescription
		appt.FollowUpRequired = outcome.FollowUpRequired
		appt.FollowUpDate = outcome.FollowUpDate
	}

	appt.Status = config.Completed
	if _, err := s.repo.Update(ctx, id, appt); err != nil {
		return apperrors.Internal("Failed to complete appointment", err)
	}

	s.publishEvent(ctx, kafka.EventAppointmentCompleted, appt)
	s.cfg.Log.Info("Appointment completed", "id", id, "vet_id", appt.VetID)
	return nil
}

// Cancel moves any non-terminal appointment to cancelled. The freed window
// becomes bookable immediately because overlap checks only count pending and
// confirmed appointments.
func (s *appointmentService) Cancel(ctx context.Context, id string, req *model.CancelRequest) error {
	if err := s.validator.ValidateCancel(req); err != nil {
		s.cfg.Log.Warn("Cancel validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid cancellation input", map[string]any{"error": err.Error()})
	}

	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if isTerminal(appt.Status) {
		return apperrors.Conflict(fmt.Sprintf("Appointment in status %s cannot be cancelled", appt.Status))
	}

	cancelledAt := s.now().UTC().Truncate(time.Millisecond)
	appt.Status = config.Cancelled
	appt.CancelledBy = req.CancelledBy
	appt.CancellationReason = req.Reason
	appt.CancellationNote = req.Note
	appt.CancelledAt = &cancelledAt

	if _, err := s.repo.Update(ctx, id, appt); err != nil {
		return apperrors.Internal("Failed to cancel appointment", err)
	}

	s.publishEvent(ctx, kafka.EventAppointmentCancelled, appt)
	s.cfg.Log.Info("Appointment cancelled",
		"id", id,
		"vet_id", appt.VetID,
		"cancelled_by", req.CancelledBy,
		"reason", req.Reason,
	)
	return nil
}

// Reschedule moves the window. The new window goes through the same schedule
// validation, slot lock, and transactional conflict check as a fresh request,
// with the appointment itself excluded from the overlap scan.
func (s *appointmentService) Reschedule(ctx context.Context, id string, req *model.RescheduleRequest) (*model.Appointment, error) {
	if err := s.validator.ValidateReschedule(req); err != nil {
		s.cfg.Log.Warn("Reschedule validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid reschedule input", map[string]any{"error": err.Error()})
	}

	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != config.Pending && appt.Status != config.Confirmed {
		return nil, apperrors.Conflict(fmt.Sprintf("Appointment in status %s cannot be rescheduled", appt.Status))
	}

	if err := s.verifyWindow(ctx, appt.VetID, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, appt.VetID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	appt.StartTime = req.StartTime
	appt.EndTime = req.EndTime

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, appt); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, appt); err != nil {
			return apperrors.Internal("Failed to reschedule appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to reschedule appointment", "id", id, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, kafka.EventAppointmentRescheduled, appt)
	s.cfg.Log.Info("Appointment rescheduled",
		"id", id,
		"vet_id", appt.VetID,
		"start_time", appt.StartTime,
	)
	return appt, nil
}

func (s *appointmentService) Upcoming(ctx context.Context, vetID string, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if vetID == "" {
		return nil, 0, apperrors.InvalidInput("Vet ID cannot be empty")
	}

	now := s.now()

	var count int64
	var appts []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountUpcoming(ctx, vetID, now)
		if err != nil {
			s.cfg.Log.Error("Failed to count upcoming appointments", "vet_id", vetID, "error", err)
			errCount = apperrors.Internal("Failed to count upcoming appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		appts, err = s.repo.FindUpcoming(ctx, vetID, now, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list upcoming appointments", "vet_id", vetID, "error", err)
			errFind = apperrors.Internal("Failed to retrieve upcoming appointments", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appts, count, nil
}

func (s *appointmentService) Today(ctx context.Context, vetID string) ([]*model.Appointment, error) {
	if vetID == "" {
		return nil, apperrors.InvalidInput("Vet ID cannot be empty")
	}

	// "Today" is the vet's calendar day, not UTC's.
	sc, err := s.schedules.GetByVet(ctx, vetID)
	if err != nil {
		return nil, err
	}
	loc := sc.Location()
	now := s.now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	appts, err := s.repo.Search(ctx, &repository.SearchQuery{
		VetID:     vetID,
		StartTime: &dayStart,
		EndTime:   &dayEnd,
	}, config.DefaultPaginationLimit, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to list today's appointments", "vet_id", vetID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve today's appointments", err)
	}

	return appts, nil
}

func (s *appointmentService) Stats(ctx context.Context, vetID string) (map[string]int64, error) {
	if vetID == "" {
		return nil, apperrors.InvalidInput("Vet ID cannot be empty")
	}

	stats, err := s.repo.CountByStatus(ctx, vetID)
	if err != nil {
		s.cfg.Log.Error("Failed to aggregate appointment stats", "vet_id", vetID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve appointment stats", err)
	}

	// Absent statuses show up as explicit zeroes.
	for _, status := range []string{config.Pending, config.Confirmed, config.InProgress, config.Completed, config.Cancelled, config.NoShow} {
		if _, ok := stats[status]; !ok {
			stats[status] = 0
		}
	}

	return stats, nil
}

// --- Helpers ---

func isTerminal(status string) bool {
	return status == config.Completed || status == config.Cancelled || status == config.NoShow
}

func (s *appointmentService) applyDefaults(appt *model.Appointment) {
	if appt.Status == "" {
		appt.Status = config.Pending
	}
}

func (s *appointmentService) sanitize(appt *model.Appointment) {
	appt.Reason = sanitizer.TrimAndNormalize(appt.Reason)
	appt.Symptoms = sanitizer.TrimAndNormalize(appt.Symptoms)
	appt.Notes = sanitizer.TrimAndNormalize(appt.Notes)
	appt.CancellationNote = sanitizer.TrimAndNormalize(appt.CancellationNote)
}

func (s *appointmentService) validate(appt *model.Appointment) error {
	if err := s.validator.Validate(appt); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.Validation("Appointment validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *appointmentService) mergeUpdates(existing *model.Appointment, updates *model.AppointmentUpdate) *model.Appointment {
	merged := *existing

	if updates.Reason != "" {
		merged.Reason = updates.Reason
	}
	if updates.Symptoms != nil {
		merged.Symptoms = *updates.Symptoms
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}
	if updates.Prescription != nil {
		merged.Prescription = *updates.Prescription
	}
	if updates.FollowUpRequired != nil {
		merged.FollowUpRequired = *updates.FollowUpRequired
	}
	if updates.FollowUpDate != nil {
		merged.FollowUpDate = updates.FollowUpDate
	}

	return &merged
}

// verifyPetOwnership confirms the pet exists, is active, and belongs to the
// requesting client.
func (s *appointmentService) verifyPetOwnership(ctx context.Context, appt *model.Appointment) error {
	pet, err := s.pets.GetByID(ctx, appt.PetID)
	if err != nil {
		return err
	}
	if !pet.Active {
		return apperrors.InvalidInput("Pet is no longer active")
	}
	if pet.OwnerID != appt.ClientID {
		return apperrors.Forbidden("Pet does not belong to the requesting client")
	}
	return nil
}

// verifyWindow checks the requested window against the vet's published
// schedule: inside working hours on a working day, not on an exception date,
// not in the past, and not beyond the advance-booking horizon.
func (s *appointmentService) verifyWindow(ctx context.Context, vetID string, startTime, endTime time.Time) error {
	now := s.now()

	if !startTime.After(now) {
		return apperrors.InvalidWindow("Appointment window must start in the future", map[string]any{
			"start_time": startTime,
		})
	}

	horizon := now.AddDate(0, 0, s.cfg.MaxAdvanceDays)
	if startTime.After(horizon) {
		return apperrors.InvalidWindow(
			fmt.Sprintf("Appointments can be booked at most %d days in advance", s.cfg.MaxAdvanceDays),
			map[string]any{"start_time": startTime, "horizon": horizon},
		)
	}

	sc, err := s.schedules.GetByVet(ctx, vetID)
	if err != nil {
		return err
	}

	loc := sc.Location()
	localStart := startTime.In(loc)
	localEnd := endTime.In(loc)

	if !s.worksOn(sc, localStart) {
		return apperrors.InvalidWindow("Veterinarian does not work on the requested day", map[string]any{
			"day": localStart.Format("2006-01-02"),
		})
	}

	dayStart, err := atTimeOfDay(localStart, sc.StartOfDay, loc)
	if err != nil {
		return apperrors.Internal("Malformed schedule start_of_day", err)
	}
	dayEnd, err := atTimeOfDay(localStart, sc.EndOfDay, loc)
	if err != nil {
		return apperrors.Internal("Malformed schedule end_of_day", err)
	}

	if localStart.Before(dayStart) || localEnd.After(dayEnd) {
		return apperrors.InvalidWindow("Appointment window falls outside the veterinarian's working hours", map[string]any{
			"working_hours": fmt.Sprintf("%s - %s", sc.StartOfDay, sc.EndOfDay),
		})
	}

	return nil
}

func (s *appointmentService) worksOn(sc *model.Schedule, date time.Time) bool {
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

func atTimeOfDay(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// verifyNoOverlap scans active appointments intersecting the window. The
// appointment itself is skipped so confirm and reschedule do not conflict
// with their own document.
func (s *appointmentService) verifyNoOverlap(ctx context.Context, appt *model.Appointment) error {
	existing, err := s.repo.FindActiveByVetAndWindow(ctx, appt.VetID, appt.StartTime, appt.EndTime, maxOverlapCheck)
	if err != nil {
		return apperrors.Internal("Failed to check existing appointments", err)
	}

	for _, other := range existing {
		if other.ID == appt.ID {
			continue
		}
		if model.Overlaps(other.StartTime, other.EndTime, appt.StartTime, appt.EndTime) {
			return apperrors.Conflict(fmt.Sprintf(
				"Appointment window overlaps with an existing appointment (%s - %s)",
				other.StartTime.Format(time.RFC3339),
				other.EndTime.Format(time.RFC3339),
			))
		}
	}
	return nil
}

// acquireSlotLock creates an advisory lock serializing booking decisions for
// one veterinarian. The key is the vet ID alone: overlapping windows with
// different start times must contend on the same lock, otherwise two
// transactions read disjoint snapshots, insert distinct documents, and both
// commit with intersecting windows. Returns a conflict error when another
// request holds the lock.
func (s *appointmentService) acquireSlotLock(ctx context.Context, vetID string) (string, error) {
	lockID := fmt.Sprintf("vet_lock_%s", vetID)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("Another booking for this veterinarian is in progress. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *appointmentService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *appointmentService) translateRepoError(err error, id string) error {
	if errors.Is(err, apptserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Appointment", id)
	}
	if errors.Is(err, apptserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid appointment ID format")
	}
	return apperrors.Internal("Failed to retrieve appointment", err)
}

// publishEvent emits a lifecycle event keyed by vet ID. Publishing is best
// effort: the booking already committed, so a broker outage must not fail the
// request.
func (s *appointmentService) publishEvent(ctx context.Context, eventType string, appt *model.Appointment) {
	if s.publisher == nil {
		return
	}

	event := kafka.AppointmentEvent{
		AppointmentID: appt.ID,
		VetID:         appt.VetID,
		ClientID:      appt.ClientID,
		PetID:         appt.PetID,
		Status:        appt.Status,
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		Reason:        appt.Reason,
		OccurredAt:    s.now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(appt.VetID).
		WithValue(event).
		WithEventType(eventType).
		WithSchemaVersion(kafka.SchemaVersionV1).
		WithSource("vetconnect-appointments").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish appointment event",
			"event_type", eventType,
			"appointment_id", appt.ID,
			"error", err,
		)
	}
}
