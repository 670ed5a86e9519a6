package handlers

import (
	"log"
	"net/http"
	"time"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/labstack/echo/v4"
)

const salesOverTimeDays = 7

type ReportHandlers struct {
	reportRepo repositories.ReportRepository
}

func NewReportHandlers(reportRepo repositories.ReportRepository) *ReportHandlers {
	return &ReportHandlers{reportRepo: reportRepo}
}

// GetSalesReport returns the revenue/discount/cost/profit summary plus the
// sale rows for an inclusive date range.
func (h *ReportHandlers) GetSalesReport(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	startStr := c.QueryParam("startDate")
	endStr := c.QueryParam("endDate")
	if startStr == "" || endStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide both start and end dates")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startDate must be in YYYY-MM-DD format")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate cannot be before startDate")
	}
	// The end date is inclusive: query up to the following midnight.
	end = end.AddDate(0, 0, 1)

	summary, err := h.reportRepo.RangeSummary(ctx, businessID, start, end)
	if err != nil {
		log.Printf("Error fetching sales report summary: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sales report")
	}
	details, err := h.reportRepo.RangeDetails(ctx, businessID, start, end)
	if err != nil {
		log.Printf("Error fetching sales report details: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sales report")
	}

	return c.JSON(http.StatusOK, models.SalesReport{
		Summary: *summary,
		Details: details,
	})
}

// GetSalesOverTime returns the rolling 7-day sales-by-day series.
func (h *ReportHandlers) GetSalesOverTime(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusOK, []models.SalesByDay{})
	}

	series, err := h.reportRepo.SalesOverTime(ctx, businessID, salesOverTimeDays)
	if err != nil {
		log.Printf("Error fetching sales over time: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch sales over time data")
	}
	return c.JSON(http.StatusOK, series)
}
