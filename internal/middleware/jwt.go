package middleware

import (
	"context"
	"net/http"
	"strings"

	"smartstock/internal/common"
	"smartstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware verifies the bearer token and loads identity, role and the
// business (tenant) id into the request context. Every verification failure
// surfaces as the same 401 so callers learn nothing about the cause.
func JWTMiddleware(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			claims, err := authSvc.ValidateToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			if businessID, ok := claims.BusinessUUID(); ok {
				ctx = context.WithValue(ctx, common.BusinessIDKey, businessID)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
