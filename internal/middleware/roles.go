package middleware

import (
	"net/http"

	"smartstock/internal/common"
	"smartstock/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireAdmin gates administrative operations. It runs strictly after
// JWTMiddleware, so a missing role means an unauthenticated request.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			if role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Not authorized as an admin")
			}
			return next(c)
		}
	}
}
