// Package scheduler runs the time-based maintenance-reminder hook.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/facilityops/access-system/internal/core/ports"
)

const defaultInterval = 24 * time.Hour

// Scheduler periodically invokes the maintenance reminder scan. Each tick
// runs the exact same code path as the on-demand endpoint, so both modes
// produce identical intent content for the same data.
type Scheduler struct {
	reminders ports.ReminderService
	interval  time.Duration
	log       zerolog.Logger
}

// New creates a Scheduler. If interval <= 0, defaultInterval is used.
func New(reminders ports.ReminderService, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{reminders: reminders, interval: interval, log: log}
}

// Start launches the tick loop. It stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("maintenance reminder scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("maintenance reminder scheduler stopped")
			return
		case <-ticker.C:
			sent, err := s.reminders.RunScheduled(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("scheduled reminder run failed")
				continue
			}
			s.log.Info().Int("sent", sent).Msg("scheduled reminder run complete")
		}
	}
}
