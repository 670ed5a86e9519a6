package handlers

import (
	"log"
	"net/http"
	"time"

	"smartstock/internal/caching"
	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/labstack/echo/v4"
)

const dashboardCacheTTL = 5 * time.Minute

type DashboardHandlers struct {
	reportRepo repositories.ReportRepository
	cacheSvc   caching.CacheService
}

func NewDashboardHandlers(reportRepo repositories.ReportRepository, cacheSvc caching.CacheService) *DashboardHandlers {
	return &DashboardHandlers{
		reportRepo: reportRepo,
		cacheSvc:   cacheSvc,
	}
}

// GetDashboard serves the headline stats, top products and recent sales. The
// assembled payload is cached per business and invalidated by sale and product
// mutations; a cache miss or dead redis just falls through to the database.
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	if cached, err := h.cacheSvc.GetDashboard(ctx, businessID); err == nil && cached != nil {
		return c.JSON(http.StatusOK, cached)
	}

	stats, err := h.reportRepo.DashboardStats(ctx, businessID)
	if err != nil {
		log.Printf("Dashboard stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching dashboard data")
	}
	topProducts, err := h.reportRepo.TopProducts(ctx, businessID, 5)
	if err != nil {
		log.Printf("Dashboard top products error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching dashboard data")
	}
	recentSales, err := h.reportRepo.RecentSales(ctx, businessID, 5)
	if err != nil {
		log.Printf("Dashboard recent sales error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching dashboard data")
	}

	dashboard := &models.Dashboard{
		Stats:       *stats,
		TopProducts: topProducts,
		RecentSales: recentSales,
	}

	if err := h.cacheSvc.SetDashboard(ctx, businessID, dashboard, dashboardCacheTTL); err != nil {
		log.Printf("Failed to cache dashboard for business %s: %v", businessID, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

// GetStats serves just the product/stock aggregates. A user without a business
// gets zeroed stats rather than an error.
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusOK, &models.DashboardStats{})
	}

	stats, err := h.reportRepo.DashboardStats(ctx, businessID)
	if err != nil {
		log.Printf("Dashboard stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}
