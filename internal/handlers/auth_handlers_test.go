package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"
	"smartstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, username, email string) error {
	args := m.Called(ctx, id, username, email)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func newAuthContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// newUserContext is newAuthContext with the acting user's id loaded into the
// request context, as the JWT middleware would have done.
func newUserContext(method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newAuthContext(method, target, body)
	req := c.Request()
	ctx := context.WithValue(req.Context(), common.UserIDKey, userID)
	c.SetRequest(req.WithContext(ctx))
	return c, rec
}

func TestRegister_AlwaysCreatesPlainUser(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	repo.On("ExistsByUsernameOrEmail", mock.Anything, "mallory", "mallory@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleUser && u.BusinessID == nil
	})).Return(nil)

	// Role and business id in the request body must be ignored.
	body := `{"username":"mallory","email":"mallory@example.com","password":"secret","role":"admin","business_id":"` + uuid.NewString() + `"}`
	c, rec := newAuthContext(http.MethodPost, "/api/auth/register", body)

	err := h.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/register", `{"username":"mallory"}`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Please enter all fields", httpErr.Message)
}

func TestRegister_DuplicateUser(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	repo.On("ExistsByUsernameOrEmail", mock.Anything, "mallory", "mallory@example.com").Return(true, nil)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/register", `{"username":"mallory","email":"mallory@example.com","password":"secret"}`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)
	businessID := uuid.New()
	user := &models.User{
		ID:           uuid.New(),
		Username:     "cashier",
		Email:        "cashier@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		BusinessID:   &businessID,
	}
	repo.On("GetByEmail", mock.Anything, "cashier@example.com").Return(user, nil)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login", `{"email":"cashier@example.com","password":"secret"}`)

	err = h.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")
	// The stored hash must never appear in the response.
	assert.NotContains(t, rec.Body.String(), string(hash))
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "cashier@example.com").Return(&models.User{
		ID:           uuid.New(),
		Email:        "cashier@example.com",
		PasswordHash: string(hash),
	}, nil)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/login", `{"email":"cashier@example.com","password":"wrong"}`)

	err = h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Invalid credentials", httpErr.Message)
}

func TestChangePassword_WrongOldPasswordLeavesHashUntouched(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	assert.NoError(t, err)
	userID := uuid.New()
	repo.On("GetByID", mock.Anything, userID).Return(&models.User{
		ID:           userID,
		PasswordHash: string(hash),
	}, nil)

	c, _ := newUserContext(http.MethodPut, "/api/users/change-password", `{"old_password":"wrong","new_password":"newsecret"}`, userID)

	err = h.ChangePassword(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Incorrect old password", httpErr.Message)
	repo.AssertNotCalled(t, "UpdatePassword")
}

func TestChangePassword_Success(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	assert.NoError(t, err)
	userID := uuid.New()
	repo.On("GetByID", mock.Anything, userID).Return(&models.User{
		ID:           userID,
		PasswordHash: string(hash),
	}, nil)
	repo.On("UpdatePassword", mock.Anything, userID, mock.MatchedBy(func(stored string) bool {
		// A fresh hash of the new password goes in, never the plaintext.
		return stored != "newsecret" &&
			bcrypt.CompareHashAndPassword([]byte(stored), []byte("newsecret")) == nil
	})).Return(nil)

	c, rec := newUserContext(http.MethodPut, "/api/users/change-password", `{"old_password":"correct","new_password":"newsecret"}`, userID)

	err = h.ChangePassword(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestChangePassword_MissingFields(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	c, _ := newUserContext(http.MethodPut, "/api/users/change-password", `{"old_password":"correct"}`, uuid.New())

	err := h.ChangePassword(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	repo.AssertNotCalled(t, "GetByID")
	repo.AssertNotCalled(t, "UpdatePassword")
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	targetID := uuid.New()
	c, _ := newAuthContext(http.MethodPut, "/api/users/"+targetID.String()+"/role", `{"role":"superadmin"}`)
	c.SetParamNames("id")
	c.SetParamValues(targetID.String())

	err := h.UpdateUserRole(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Invalid role specified", httpErr.Message)
	repo.AssertNotCalled(t, "UpdateRole")
}

func TestUpdateUserRole_Success(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	targetID := uuid.New()
	repo.On("UpdateRole", mock.Anything, targetID, models.RoleAdmin).Return(nil)

	c, rec := newAuthContext(http.MethodPut, "/api/users/"+targetID.String()+"/role", `{"role":"admin"}`)
	c.SetParamNames("id")
	c.SetParamValues(targetID.String())

	err := h.UpdateUserRole(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	repo := new(MockUserRepository)
	h := NewAuthHandlers(services.NewAuthService("test-secret"), repo)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repositories.ErrNotFound)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/login", `{"email":"ghost@example.com","password":"secret"}`)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Invalid credentials", httpErr.Message)
}
