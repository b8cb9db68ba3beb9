package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

type reminderService struct {
	schedules  ports.MaintenanceRepository
	dispatcher ports.NotificationDispatcher
	log        zerolog.Logger
	now        func() time.Time
}

// NewReminderService returns the due-date scanner. Both invocation modes
// run the same scan, so for the same underlying data they produce identical
// intent content.
func NewReminderService(
	schedules ports.MaintenanceRepository,
	dispatcher ports.NotificationDispatcher,
	log zerolog.Logger,
) ports.ReminderService {
	return &reminderService{
		schedules:  schedules,
		dispatcher: dispatcher,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RunForCaller is the on-demand mode, gated to admin and engineer callers.
func (s *reminderService) RunForCaller(ctx context.Context, caller ports.Caller) (int, error) {
	if caller.UID == "" {
		return 0, domain.ErrUnauthenticated
	}
	role := domain.Role(caller.ClaimRole)
	if role != domain.RoleAdmin && role != domain.RoleEngineer {
		return 0, domain.ErrPermissionDenied
	}
	return s.run(ctx)
}

// RunScheduled is invoked by the in-process scheduler only; it carries no
// caller identity.
func (s *reminderService) RunScheduled(ctx context.Context) (int, error) {
	return s.run(ctx)
}

func (s *reminderService) run(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.schedules.FindDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("maintenance reminders: query schedules: %w", err)
	}

	intents := MaintenanceIntents(due, now)
	if len(intents) == 0 {
		return 0, nil
	}

	sent := s.dispatcher.Dispatch(ctx, intents)
	s.log.Info().Int("due", len(due)).Int("sent", sent).Msg("maintenance reminders dispatched")
	return sent, nil
}

// MaintenanceIntents builds one reminder intent per due schedule with a
// non-empty assignee. Body wording depends on overdue magnitude.
func MaintenanceIntents(schedules []domain.MaintenanceSchedule, now time.Time) []domain.NotificationIntent {
	intents := make([]domain.NotificationIntent, 0, len(schedules))
	for _, sched := range schedules {
		if sched.AssignedTo == "" {
			continue
		}

		title := "Maintenance Due"
		body := "A scheduled maintenance is due today."
		if days := sched.OverdueDays(now); days > 0 {
			title = "Maintenance Overdue"
			body = fmt.Sprintf("A scheduled maintenance is %d day(s) overdue.", days)
		}

		intents = append(intents, domain.NotificationIntent{
			RecipientUID: sched.AssignedTo,
			Title:        title,
			Body:         body,
			Data: map[string]string{
				"type":       domain.NotifyMaintenanceDue,
				"scheduleId": sched.ID,
			},
			CorrelationID: sched.ID,
		})
	}
	return intents
}
