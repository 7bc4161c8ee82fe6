package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cameshop/cameshop-api/internal/core/domain"
)

// RBAC enforces role-based access control. Taking domain.Role keeps call
// sites inside the closed role set.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "access unauthorized"})
			}
			return next(c)
		}
	}
}
