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

type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusOK, []*models.Supplier{})
	}

	suppliers, err := h.supplierService.List(ctx, businessID)
	if err != nil {
		log.Printf("Error fetching suppliers: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch suppliers")
	}
	if suppliers == nil {
		suppliers = []*models.Supplier{}
	}
	return c.JSON(http.StatusOK, suppliers)
}

type SupplierRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and Email are required")
	}

	supplier := &models.Supplier{
		BusinessID:    businessID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	if err := h.supplierService.Create(ctx, supplier); err != nil {
		log.Printf("Error adding supplier: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add supplier")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":    "Supplier added successfully!",
		"insertedId": supplier.ID,
	})
}

func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	id, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and Email are required")
	}

	supplier := &models.Supplier{
		ID:            id,
		BusinessID:    businessID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	if err := h.supplierService.Update(ctx, supplier); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Supplier not found or you don't have permission")
		}
		log.Printf("Error updating supplier: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update supplier")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Supplier updated successfully!"})
}

func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	id, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.supplierService.Delete(ctx, businessID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Supplier not found or you don't have permission")
		}
		log.Printf("Error deleting supplier: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete supplier")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Supplier deleted successfully!"})
}
