package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/facilityops/access-system/internal/core/ports"
)

// RoleHandler handles HTTP requests for role administration.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// --- Request / Response types ---

type changeRoleRequest struct {
	TargetUID string `json:"target_uid" validate:"required"`
	NewRole   string `json:"new_role" validate:"required"`
}

type bootstrapRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type roleResponse struct {
	Status string `json:"status"`
	Role   string `json:"role,omitempty"`
}

// Change handles POST /v1/roles/change.
//
// @Summary      Change a user's role (admin only)
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeRoleRequest  true  "Target user and new role"
// @Success      200   {object}  roleResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/roles/change [post]
func (h *RoleHandler) Change(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.ChangeRole(c.Request().Context(), ports.ChangeRoleInput{
		Caller:    caller,
		TargetUID: req.TargetUID,
		NewRole:   req.NewRole,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, roleResponse{
		Status: result.Status,
		Role:   string(result.Role),
	})
}

// Bootstrap handles POST /v1/roles/bootstrap.
//
// @Summary      Elevate the caller to admin using the bootstrap secret
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bootstrapRequest  true  "Bootstrap secret"
// @Success      200   {object}  roleResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      412   {object}  map[string]string
// @Router       /v1/roles/bootstrap [post]
func (h *RoleHandler) Bootstrap(c echo.Context) error {
	var req bootstrapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.BootstrapFirstAdmin(c.Request().Context(), caller, req.Secret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, roleResponse{
		Status: result.Status,
		Role:   string(result.Role),
	})
}

// Sync handles POST /v1/roles/sync.
//
// @Summary      Reconcile the caller's role claim with the stored profile
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  roleResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      412   {object}  map[string]string
// @Router       /v1/roles/sync [post]
func (h *RoleHandler) Sync(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.SelfSyncRoleClaim(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, roleResponse{
		Status: result.Status,
		Role:   string(result.Role),
	})
}
