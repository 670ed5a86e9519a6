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

type SalesHandlers struct {
	saleService services.SaleService
}

func NewSalesHandlers(saleService services.SaleService) *SalesHandlers {
	return &SalesHandlers{saleService: saleService}
}

type CreateSaleRequest struct {
	CustomerName string                   `json:"customer_name"`
	TotalAmount  *float64                 `json:"total_amount"`
	Items        []services.SaleItemInput `json:"items"`
}

// CreateSale records a sale together with its line items and stock decrements
// in one transaction. A failure anywhere leaves nothing behind.
func (h *SalesHandlers) CreateSale(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	sale, err := h.saleService.CreateSale(ctx, businessID, userID, req.CustomerName, req.TotalAmount, req.Items)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSale) {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing required sale data")
		}
		log.Printf("Sale creation error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record sale")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Sale recorded successfully!",
		"saleId":  sale.ID,
	})
}

func (h *SalesHandlers) ListSales(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusOK, []*models.SaleSummary{})
	}

	sales, err := h.saleService.ListSales(ctx, businessID, c.QueryParam("search"))
	if err != nil {
		log.Printf("Error fetching all sales: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sales")
	}
	if sales == nil {
		sales = []*models.SaleSummary{}
	}
	return c.JSON(http.StatusOK, sales)
}

func (h *SalesHandlers) GetSale(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	saleID, err := common.ValidateUUID(c.Param("id"), "sale id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.saleService.GetSaleDetail(ctx, businessID, saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sale not found or you don't have permission to view it")
		}
		log.Printf("Error fetching sale by ID: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sale details")
	}

	return c.JSON(http.StatusOK, detail)
}
