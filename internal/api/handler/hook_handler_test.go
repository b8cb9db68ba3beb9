package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/facilityops/access-system/internal/core/domain"
)

type stubHookService struct {
	writeFn func(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error)
}

func (s *stubHookService) OnRepairRequestWrite(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error) {
	return s.writeFn(ctx, before, after, recordID)
}

func TestHookHandler_AssignmentWrite(t *testing.T) {
	stub := &stubHookService{
		writeFn: func(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error) {
			if recordID != "req_42" {
				t.Fatalf("unexpected record id: %s", recordID)
			}
			if before != nil {
				t.Fatalf("expected nil before on creation")
			}
			if after == nil || after.AssignedEngineerID != "eng_7" {
				t.Fatalf("unexpected after state: %+v", after)
			}
			return 1, nil
		},
	}
	h := NewHookHandler(stub)

	body := `{"record_id":"req_42","before":null,"after":{"assignedEngineerId":"eng_7","status":"open"}}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/hooks/repair-requests", body)

	if err := h.RepairRequestWrite(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["dispatched"] != float64(1) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHookHandler_DeletionWrite(t *testing.T) {
	stub := &stubHookService{
		writeFn: func(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error) {
			if after != nil {
				t.Fatalf("expected nil after on deletion")
			}
			return 0, nil
		},
	}
	h := NewHookHandler(stub)

	body := `{"record_id":"req_42","before":{"status":"open"},"after":null}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/hooks/repair-requests", body)

	if err := h.RepairRequestWrite(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHookHandler_MissingRecordID(t *testing.T) {
	stub := &stubHookService{
		writeFn: func(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	h := NewHookHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/hooks/repair-requests", `{"after":{"status":"open"}}`)

	err := h.RepairRequestWrite(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestHookHandler_InvalidPayload(t *testing.T) {
	stub := &stubHookService{
		writeFn: func(ctx context.Context, before, after *domain.RepairRequest, recordID string) (int, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	h := NewHookHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/hooks/repair-requests", "not-json")

	err := h.RepairRequestWrite(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}
