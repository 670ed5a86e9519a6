package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func issueTestToken(t *testing.T, svc services.AuthService, role string, businessID *uuid.UUID) string {
	t.Helper()
	token, err := svc.IssueToken(&models.User{
		ID:         uuid.New(),
		Username:   "cashier",
		Email:      "cashier@example.com",
		Role:       role,
		BusinessID: businessID,
	})
	assert.NoError(t, err)
	return token
}

func runProtected(token string, svc services.AuthService, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTMiddleware(svc)(handler)(c)
	return rec, err
}

func TestJWTMiddleware_SetsClaimsInContext(t *testing.T) {
	svc := services.NewAuthService("test-secret")
	businessID := uuid.New()
	token := issueTestToken(t, svc, models.RoleAdmin, &businessID)

	rec, err := runProtected("Bearer "+token, svc, func(c echo.Context) error {
		ctx := c.Request().Context()

		_, ok := common.GetUserIDFromContext(ctx)
		assert.True(t, ok)

		role, ok := common.GetRoleFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, models.RoleAdmin, role)

		got, ok := common.GetBusinessIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, businessID, got)

		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_NoBusinessClaimLeavesContextEmpty(t *testing.T) {
	svc := services.NewAuthService("test-secret")
	token := issueTestToken(t, svc, models.RoleUser, nil)

	_, err := runProtected("Bearer "+token, svc, func(c echo.Context) error {
		_, ok := common.GetBusinessIDFromContext(c.Request().Context())
		assert.False(t, ok)
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, err)
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	svc := services.NewAuthService("test-secret")

	_, err := runProtected("", svc, func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Equal(t, "Not authorized, no token", httpErr.Message)
}

func TestJWTMiddleware_RejectsNonBearerAndBadTokens(t *testing.T) {
	svc := services.NewAuthService("test-secret")

	for _, header := range []string{"tokenwithoutscheme", "Bearer garbage"} {
		_, err := runProtected(header, svc, func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.Equal(t, "Not authorized, token failed", httpErr.Message)
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	svc := services.NewAuthService("test-secret")
	token := issueTestToken(t, svc, models.RoleAdmin, nil)

	rec, err := runProtected("Bearer "+token, svc, func(c echo.Context) error {
		return RequireAdmin()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsPlainUser(t *testing.T) {
	svc := services.NewAuthService("test-secret")
	token := issueTestToken(t, svc, models.RoleUser, nil)

	_, err := runProtected("Bearer "+token, svc, func(c echo.Context) error {
		return RequireAdmin()(func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})(c)
	})
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Equal(t, "Not authorized as an admin", httpErr.Message)
}
