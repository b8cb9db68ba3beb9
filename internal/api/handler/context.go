package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/facilityops/access-system/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware. The uid
// must be present (presence proves the middleware ran); the role claim is
// optional because freshly provisioned accounts have no role yet.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("role").(string)
	return ports.Caller{UID: uid, ClaimRole: role}, nil
}
