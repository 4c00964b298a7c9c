package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/corpspend/expense-api/internal/core/domain"
	"github.com/corpspend/expense-api/internal/core/ports"
)

// ctxViewer extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: user id and a known role must
// both be present, otherwise the token is structurally valid but unusable.
func ctxViewer(c echo.Context) (ports.Viewer, error) {
	userID, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	name, _ := c.Get("name").(string)

	role := domain.Role(roleStr)
	if userID == "" || !role.Valid() {
		return ports.Viewer{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return ports.Viewer{UserID: userID, Role: role, Name: name}, nil
}
