package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

const (
	auditDefaultLimit = 25
	auditMaxLimit     = 100
)

// AuditHandler exposes the read-back view of the audit trail.
type AuditHandler struct {
	audit ports.AuditLog
}

func NewAuditHandler(audit ports.AuditLog) *AuditHandler {
	return &AuditHandler{audit: audit}
}

type auditLogsResponse struct {
	Entries []domain.AuditEntry `json:"entries"`
}

// Logs handles GET /v1/audit/logs.
//
// @Summary      List recent audit entries, newest first (admin only)
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries to return (default 25, cap 100)"
// @Success      200    {object}  auditLogsResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /v1/audit/logs [get]
func (h *AuditHandler) Logs(c echo.Context) error {
	limit := auditDefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}

	entries, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}

	return c.JSON(http.StatusOK, auditLogsResponse{Entries: entries})
}
