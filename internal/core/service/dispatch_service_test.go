package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubGateway struct {
	batchSizes []int
	batchErr   error
	// failTokens marks tokens whose per-message outcome is a failure.
	failTokens map[string]bool
}

func (g *stubGateway) SendBatch(_ context.Context, msgs []ports.PushMessage) ([]ports.SendResult, error) {
	g.batchSizes = append(g.batchSizes, len(msgs))
	if g.batchErr != nil {
		return nil, g.batchErr
	}
	results := make([]ports.SendResult, len(msgs))
	for i, m := range msgs {
		if g.failTokens[m.Token] {
			results[i] = ports.SendResult{Delivered: false, Error: "unregistered"}
		} else {
			results[i] = ports.SendResult{Delivered: true}
		}
	}
	return results, nil
}

type stubDedup struct {
	dups    map[string]bool
	dupErr  error
	markErr error
	marked  []string
}

func newStubDedup() *stubDedup {
	return &stubDedup{dups: make(map[string]bool)}
}

func dedupKey(uid, typ, corr string) string { return uid + ":" + typ + ":" + corr }

func (d *stubDedup) IsDuplicate(_ context.Context, uid, typ, corr string) (bool, error) {
	if d.dupErr != nil {
		return false, d.dupErr
	}
	return d.dups[dedupKey(uid, typ, corr)], nil
}

func (d *stubDedup) Mark(_ context.Context, uid, typ, corr string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, dedupKey(uid, typ, corr))
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func reminderIntent(recipient, correlation string) domain.NotificationIntent {
	return domain.NotificationIntent{
		RecipientUID:  recipient,
		Title:         "Maintenance Due",
		Body:          "A scheduled maintenance is due today.",
		Data:          map[string]string{"type": domain.NotifyMaintenanceDue, "scheduleId": correlation},
		CorrelationID: correlation,
	}
}

func seedRecipients(repo *stubProfileRepo, n int) []domain.NotificationIntent {
	intents := make([]domain.NotificationIntent, 0, n)
	for i := 0; i < n; i++ {
		uid := fmt.Sprintf("U%03d", i)
		repo.profiles[uid] = &domain.UserProfile{UID: uid, Role: domain.RoleEngineer, FCMToken: "tok-" + uid}
		intents = append(intents, reminderIntent(uid, fmt.Sprintf("S%03d", i)))
	}
	return intents
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestDispatch_BatchesOf100(t *testing.T) {
	repo := newStubProfileRepo()
	intents := seedRecipients(repo, 250)
	gw := &stubGateway{}
	dedup := newStubDedup()

	svc := NewDispatchService(repo, gw, dedup, 0, zerolog.Nop())
	attempted := svc.Dispatch(context.Background(), intents)

	if attempted != 250 {
		t.Fatalf("attempted = %d, want 250", attempted)
	}
	want := []int{100, 100, 50}
	if len(gw.batchSizes) != len(want) {
		t.Fatalf("batch calls = %v, want %v", gw.batchSizes, want)
	}
	for i, size := range want {
		if gw.batchSizes[i] != size {
			t.Errorf("batch %d size = %d, want %d", i, gw.batchSizes[i], size)
		}
	}
	if len(dedup.marked) != 250 {
		t.Errorf("expected all submitted intents marked, got %d", len(dedup.marked))
	}
}

func TestDispatch_DropsRecipientsWithoutDevice(t *testing.T) {
	repo := newStubProfileRepo()
	repo.profiles["U1"] = &domain.UserProfile{UID: "U1", FCMToken: "tok-1"}
	repo.profiles["U2"] = &domain.UserProfile{UID: "U2"} // no device registered
	gw := &stubGateway{}

	svc := NewDispatchService(repo, gw, newStubDedup(), 0, zerolog.Nop())
	attempted := svc.Dispatch(context.Background(), []domain.NotificationIntent{
		reminderIntent("U1", "S1"),
		reminderIntent("U2", "S2"),
	})

	if attempted != 1 {
		t.Fatalf("attempted = %d, want 1", attempted)
	}
	if len(gw.batchSizes) != 1 || gw.batchSizes[0] != 1 {
		t.Fatalf("unexpected batch calls: %v", gw.batchSizes)
	}
}

func TestDispatch_ResolveFailureDropsOnlyThatIntent(t *testing.T) {
	repo := newStubProfileRepo()
	repo.profiles["U1"] = &domain.UserProfile{UID: "U1", FCMToken: "tok-1"}
	gw := &stubGateway{}

	svc := NewDispatchService(repo, gw, newStubDedup(), 0, zerolog.Nop())
	attempted := svc.Dispatch(context.Background(), []domain.NotificationIntent{
		reminderIntent("GHOST", "S1"), // lookup fails
		reminderIntent("U1", "S2"),
	})

	if attempted != 1 {
		t.Fatalf("attempted = %d, want 1", attempted)
	}
}

func TestDispatch_DuplicatesSkipped(t *testing.T) {
	repo := newStubProfileRepo()
	repo.profiles["U1"] = &domain.UserProfile{UID: "U1", FCMToken: "tok-1"}
	gw := &stubGateway{}
	dedup := newStubDedup()
	dedup.dups[dedupKey("U1", domain.NotifyMaintenanceDue, "S1")] = true

	svc := NewDispatchService(repo, gw, dedup, 0, zerolog.Nop())
	attempted := svc.Dispatch(context.Background(), []domain.NotificationIntent{
		reminderIntent("U1", "S1"),
	})

	if attempted != 0 {
		t.Fatalf("attempted = %d, want 0", attempted)
	}
	if len(gw.batchSizes) != 0 {
		t.Errorf("gateway called for duplicate intent")
	}
}

func TestDispatch_DedupCheckFailureSendsAnyway(t *testing.T) {
	repo := newStubProfileRepo()
	repo.profiles["U1"] = &domain.UserProfile{UID: "U1", FCMToken: "tok-1"}
	gw := &stubGateway{}
	dedup := newStubDedup()
	dedup.dupErr = errors.New("redis down")

	svc := NewDispatchService(repo, gw, dedup, 0, zerolog.Nop())
	if attempted := svc.Dispatch(context.Background(), []domain.NotificationIntent{reminderIntent("U1", "S1")}); attempted != 1 {
		t.Fatalf("attempted = %d, want 1", attempted)
	}
}

func TestDispatch_GatewayFailureNotSurfaced(t *testing.T) {
	repo := newStubProfileRepo()
	intents := seedRecipients(repo, 3)
	gw := &stubGateway{batchErr: errors.New("gateway unreachable")}

	svc := NewDispatchService(repo, gw, newStubDedup(), 0, zerolog.Nop())
	attempted := svc.Dispatch(context.Background(), intents)

	// Best-effort contract: the failure is swallowed, the count still
	// reflects what was attempted.
	if attempted != 3 {
		t.Fatalf("attempted = %d, want 3", attempted)
	}
}

func TestDispatch_PerMessageFailuresNotRetried(t *testing.T) {
	repo := newStubProfileRepo()
	intents := seedRecipients(repo, 2)
	gw := &stubGateway{failTokens: map[string]bool{"tok-U000": true}}

	svc := NewDispatchService(repo, gw, newStubDedup(), 0, zerolog.Nop())
	attempted := svc.Dispatch(context.Background(), intents)

	if attempted != 2 {
		t.Fatalf("attempted = %d, want 2", attempted)
	}
	if len(gw.batchSizes) != 1 {
		t.Errorf("expected a single batch call, got %v", gw.batchSizes)
	}
}

func TestDispatch_EmptyCycle(t *testing.T) {
	svc := NewDispatchService(newStubProfileRepo(), &stubGateway{}, newStubDedup(), 0, zerolog.Nop())
	if attempted := svc.Dispatch(context.Background(), nil); attempted != 0 {
		t.Fatalf("attempted = %d, want 0", attempted)
	}
}
