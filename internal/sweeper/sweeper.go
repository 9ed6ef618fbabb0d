// Package sweeper runs the periodic maintenance passes that keep the
// appointment data honest: expired slot locks are removed and stale
// pending/confirmed appointments are marked as no-shows.
package sweeper

import (
	"context"
	"time"

	"vetconnect/internal/appointments/repository"
	"vetconnect/pkg/config"
	"vetconnect/pkg/logger"
)

type Sweeper struct {
	appointments repository.AppointmentRepository
	locks        repository.SlotLockRepository
	log          *logger.Logger

	interval time.Duration
	grace    time.Duration

	now func() time.Time
}

func NewSweeper(appointments repository.AppointmentRepository, locks repository.SlotLockRepository, cfg *config.Config) *Sweeper {
	return &Sweeper{
		appointments: appointments,
		locks:        locks,
		log:          cfg.Log,
		interval:     cfg.SweepInterval,
		grace:        cfg.NoShowGrace,
		now:          time.Now,
	}
}

// Run blocks until ctx is cancelled. One pass runs immediately on start
// so a restarted sweeper does not wait a full interval to catch up.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("Sweeper started", "interval", s.interval, "no_show_grace", s.grace)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := s.now().UTC()

	removed, err := s.locks.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error("Failed to remove expired slot locks", "error", err)
	} else if removed > 0 {
		s.log.Info("Removed expired slot locks", "count", removed)
	}

	// An appointment only becomes a no-show once its start time has been
	// in the past for the full grace period.
	cutoff := now.Add(-s.grace)
	marked, err := s.appointments.MarkNoShows(ctx, cutoff)
	if err != nil {
		s.log.Error("Failed to mark no-show appointments", "error", err)
		return
	}
	if marked > 0 {
		s.log.Info("Marked no-show appointments", "count", marked, "cutoff", cutoff)
	}
}
