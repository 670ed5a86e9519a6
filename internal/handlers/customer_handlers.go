package handlers

import (
	"errors"
	"log"
	"net/http"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CustomerHandlers struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerHandlers(customerRepo repositories.CustomerRepository) *CustomerHandlers {
	return &CustomerHandlers{customerRepo: customerRepo}
}

func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusOK, []*models.Customer{})
	}

	customers, err := h.customerRepo.List(ctx, businessID)
	if err != nil {
		log.Printf("Error fetching customers: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch customers")
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	return c.JSON(http.StatusOK, customers)
}

type CustomerRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	customer := &models.Customer{
		ID:         uuid.New(),
		BusinessID: businessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	}
	if err := h.customerRepo.Create(ctx, customer); err != nil {
		log.Printf("Error adding customer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add customer")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":    "Customer added successfully!",
		"insertedId": customer.ID,
	})
}

func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	id, err := common.ValidateUUID(c.Param("id"), "customer id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	customer := &models.Customer{
		ID:         id,
		BusinessID: businessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	}
	if err := h.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Customer not found or you don't have permission")
		}
		log.Printf("Error updating customer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update customer")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Customer updated successfully!"})
}

func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	id, err := common.ValidateUUID(c.Param("id"), "customer id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.customerRepo.Delete(ctx, businessID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Customer not found or you don't have permission")
		}
		log.Printf("Error deleting customer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete customer")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Customer deleted successfully!"})
}
