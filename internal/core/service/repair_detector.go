package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

type repairHookService struct {
	dispatcher ports.NotificationDispatcher
	log        zerolog.Logger
}

// NewRepairHookService returns the event-triggered change detector for
// repair-request writes.
func NewRepairHookService(dispatcher ports.NotificationDispatcher, log zerolog.Logger) ports.RepairHookService {
	return &repairHookService{dispatcher: dispatcher, log: log}
}

// OnRepairRequestWrite evaluates the transition rules for one write and
// dispatches whatever intents they yield. Deletions (after == nil) produce
// nothing. Both rules are independent and may fire on the same write.
func (s *repairHookService) OnRepairRequestWrite(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error) {
	if after == nil {
		return 0, nil
	}

	intents := DetectRepairTransitions(before, after, recordID)
	if len(intents) == 0 {
		return 0, nil
	}

	s.log.Debug().
		Str("record_id", recordID).
		Int("intents", len(intents)).
		Msg("repair-request transitions detected")

	return s.dispatcher.Dispatch(ctx, intents), nil
}

// DetectRepairTransitions applies the two transition rules to a single
// before/after pair. before is nil on creation.
//
//   - Assignment rule: fires when the assigned-engineer field goes from
//     empty to a concrete value in this write. A write that leaves an
//     already-populated field untouched does not fire.
//   - Completion rule: fires when the status field changes value in this
//     write and the new value is terminal, addressed to the reporter when
//     one is recorded.
func DetectRepairTransitions(before, after *domain.RepairRequest, recordID string) []domain.NotificationIntent {
	var intents []domain.NotificationIntent

	if (before == nil || before.AssignedEngineerID == "") && after.AssignedEngineerID != "" {
		intents = append(intents, domain.NotificationIntent{
			RecipientUID: after.AssignedEngineerID,
			Title:        "New Assignment",
			Body:         "A repair request has been assigned to you.",
			Data: map[string]string{
				"type":  domain.NotifyRepairAssigned,
				"reqId": recordID,
			},
			CorrelationID: recordID,
		})
	}

	if before != nil && before.Status != after.Status && after.Status.Terminal() && after.ReportedByUserID != "" {
		intents = append(intents, domain.NotificationIntent{
			RecipientUID: after.ReportedByUserID,
			Title:        "Request Completed",
			Body:         "Your repair request has been marked as completed.",
			Data: map[string]string{
				"type":  domain.NotifyRepairCompleted,
				"reqId": recordID,
			},
			CorrelationID: recordID,
		})
	}

	return intents
}
