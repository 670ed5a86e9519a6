package handlers

import (
	"errors"
	"log"
	"net/http"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"
	"smartstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers handles registration, login and user management requests.
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userRepo:    userRepo,
	}
}

// RegisterRequest carries only the fields a self-registering user may set.
// Role and business id are deliberately absent: registration always produces
// a plain user with no business association.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user self-registration.
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please enter all fields")
	}

	exists, err := h.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		log.Printf("Registration lookup error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during registration")
	}
	if exists {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this username or email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Password hashing error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during registration")
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		log.Printf("Registration error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during registration")
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully!"})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Login verifies credentials and issues an 8-hour bearer token carrying the
// user's identity, role and business id.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please enter all fields")
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}
	if err != nil {
		log.Printf("Login error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		log.Printf("Token issuance error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Logged in successfully!",
		Token:   token,
		User:    user,
	})
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateProfile lets the authenticated user change their own username and
// email. Role is not part of the request and can never change here.
func (h *AuthHandlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Username == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and Email are required")
	}

	if err := h.userRepo.UpdateProfile(ctx, userID, req.Username, req.Email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Printf("Profile update error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during profile update")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Profile updated successfully."})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword re-verifies the old password before storing a new hash; a
// mismatch leaves the stored credential untouched.
func (h *AuthHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All password fields are required")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("Change password lookup error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during password change")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Incorrect old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Password hashing error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during password change")
	}

	if err := h.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		log.Printf("Password update error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during password change")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully."})
}

// ListUsers returns all users for administrators.
func (h *AuthHandlers) ListUsers(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error fetching users")
	}
	if users == nil {
		users = []*models.User{}
	}
	return c.JSON(http.StatusOK, users)
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole is the only path that can change a user's role.
func (h *AuthHandlers) UpdateUserRole(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRole(req.Role); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid role specified")
	}

	if err := h.userRepo.UpdateRole(ctx, id, req.Role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Printf("Error updating user role: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error updating role")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User role updated successfully"})
}
