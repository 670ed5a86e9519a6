package handlers

import (
	"errors"
	"log"
	"net/http"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"
	"smartstock/internal/services"

	"github.com/labstack/echo/v4"
)

type SettingsHandlers struct {
	settingsService services.SettingsService
}

func NewSettingsHandlers(settingsService services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settingsService: settingsService}
}

// GetSettings returns the business settings, or an empty record for a
// business that has not saved any yet.
func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	settings, err := h.settingsService.Get(ctx, businessID)
	if err != nil {
		log.Printf("Error fetching business settings: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch settings")
	}
	return c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// UpdateSettings upserts the business settings row.
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	settings := &models.BusinessSettings{
		BusinessID:   businessID,
		BusinessName: req.BusinessName,
		Address:      req.Address,
		Phone:        req.Phone,
	}
	if err := h.settingsService.Update(ctx, settings); err != nil {
		log.Printf("Error updating business settings: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update settings")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Business settings updated successfully!"})
}

// UploadLogo stores a business logo in the object store and records its key.
func (h *SettingsHandlers) UploadLogo(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A logo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded logo: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload logo")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.settingsService.UploadLogo(ctx, businessID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Save business settings before uploading a logo")
		}
		log.Printf("Error uploading logo: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload logo")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":  "Logo uploaded successfully!",
		"logo_url": url,
	})
}

type FactoryResetRequest struct {
	Password string `json:"password"`
}

// FactoryReset clears the business's transactional data after password
// reconfirmation. Other businesses' rows, settings and users are untouched.
func (h *SettingsHandlers) FactoryReset(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	var req FactoryResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Password is required for confirmation")
	}

	if err := h.settingsService.FactoryReset(ctx, businessID, userID, req.Password); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect password. Action denied")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		log.Printf("Error during factory reset: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error during reset")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Factory reset successful. All transactional data for your business has been cleared.",
	})
}
