package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

// HookHandler receives repair-request write events from the data layer.
type HookHandler struct {
	service ports.RepairHookService
}

func NewHookHandler(service ports.RepairHookService) *HookHandler {
	return &HookHandler{service: service}
}

// repairWriteRequest is one write event. Before is null on creation and
// After is null on deletion; both carry the full document snapshot.
type repairWriteRequest struct {
	RecordID string                `json:"record_id" validate:"required"`
	Before   *domain.RepairRequest `json:"before"`
	After    *domain.RepairRequest `json:"after"`
}

type hookResponse struct {
	Dispatched int `json:"dispatched"`
}

// RepairRequestWrite handles POST /v1/hooks/repair-requests.
//
// @Summary      Process a repair-request write event
// @Tags         hooks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      repairWriteRequest  true  "Before/after snapshots of the written record"
// @Success      200   {object}  hookResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/hooks/repair-requests [post]
func (h *HookHandler) RepairRequestWrite(c echo.Context) error {
	var req repairWriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dispatched, err := h.service.OnRepairRequestWrite(c.Request().Context(), req.Before, req.After, req.RecordID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, hookResponse{Dispatched: dispatched})
}
