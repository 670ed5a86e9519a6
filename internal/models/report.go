package models

import "time"

// DashboardStats holds the headline product/stock aggregates. All fields are
// zero-valued (never null) when the business has no rows.
type DashboardStats struct {
	TotalProducts int     `json:"totalProducts" db:"total_products"`
	TotalStock    int     `json:"totalStock" db:"total_stock"`
	TotalValue    float64 `json:"totalValue" db:"total_value"`
}

type TopProduct struct {
	Name      string `json:"name" db:"name"`
	TotalSold int    `json:"total_sold" db:"total_sold"`
}

type Dashboard struct {
	Stats       DashboardStats `json:"stats"`
	TopProducts []TopProduct   `json:"topProducts"`
	RecentSales []SaleSummary  `json:"recentSales"`
}

// SalesReportSummary aggregates a date range of sale items.
type SalesReportSummary struct {
	TotalSales    int     `json:"total_sales" db:"total_sales"`
	TotalRevenue  float64 `json:"total_revenue" db:"total_revenue"`
	TotalDiscount float64 `json:"total_discount" db:"total_discount"`
	TotalCost     float64 `json:"total_cost" db:"total_cost"`
	GrossProfit   float64 `json:"gross_profit" db:"gross_profit"`
}

type SalesReport struct {
	Summary SalesReportSummary `json:"summary"`
	Details []SaleSummary      `json:"details"`
}

// SalesByDay is one point of the rolling sales-over-time series.
type SalesByDay struct {
	Date  time.Time `json:"date" db:"date"`
	Total float64   `json:"total" db:"total"`
}
