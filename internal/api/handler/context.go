package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cameshop/cameshop-api/internal/core/domain"
	"github.com/cameshop/cameshop-api/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware. A missing
// or unknown role means the middleware did not run or the token predates a
// role change; either way the request is rejected before any service call.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)

	role := domain.Role(roleStr)
	if userID == "" || !role.Valid() {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return ports.Caller{UserID: userID, Role: role}, nil
}
