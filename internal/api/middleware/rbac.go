package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corpspend/expense-api/internal/core/domain"
)

// RBAC enforces role-based access control. Requests whose token role is not
// in the allow list fail with 403 before the handler runs.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}
