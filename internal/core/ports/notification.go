package ports

import (
	"context"

	"github.com/facilityops/access-system/internal/core/domain"
)

// NotificationDispatcher resolves recipient addresses and performs one
// batched, best-effort dispatch cycle. The return value is the number of
// intents actually attempted against the gateway; per-recipient failures
// are never surfaced.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, intents []domain.NotificationIntent) int
}

// RepairHookService is the event-triggered change detector. It receives the
// before-state (nil on creation) and after-state (nil on deletion) of one
// repair-request write and dispatches the resulting intents. The int is the
// number of intents attempted.
type RepairHookService interface {
	OnRepairRequestWrite(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error)
}

// ReminderService is the scheduled/on-demand due-date scanner. Both entry
// points run the same scan and produce identical intent content; only the
// authorization gate differs.
type ReminderService interface {
	// RunForCaller is the on-demand mode, restricted to admin and engineer.
	RunForCaller(ctx context.Context, caller Caller) (int, error)

	// RunScheduled is the unauthenticated mode reachable only from the
	// in-process scheduler.
	RunScheduled(ctx context.Context) (int, error)
}
