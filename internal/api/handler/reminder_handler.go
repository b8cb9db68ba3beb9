package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/facilityops/access-system/internal/core/ports"
)

// ReminderHandler exposes the on-demand maintenance reminder scan.
type ReminderHandler struct {
	service ports.ReminderService
}

func NewReminderHandler(service ports.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

type reminderRunResponse struct {
	Dispatched int `json:"dispatched"`
}

// Run handles POST /v1/maintenance/reminders/run.
//
// @Summary      Scan maintenance schedules and dispatch due reminders
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  reminderRunResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/maintenance/reminders/run [post]
func (h *ReminderHandler) Run(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	dispatched, err := h.service.RunForCaller(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reminderRunResponse{Dispatched: dispatched})
}
