package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is immutable after creation; there is no update path.
type Sale struct {
	ID           uuid.UUID `json:"id" db:"id"`
	BusinessID   uuid.UUID `json:"business_id" db:"business_id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	TotalAmount  float64   `json:"total_amount" db:"total_amount"`
	SaleDate     time.Time `json:"sale_date" db:"sale_date"`
}

// SaleItem records price, cost and discount as they were at sale time so that
// historical reports survive later product price changes.
type SaleItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SaleID       uuid.UUID `json:"sale_id" db:"sale_id"`
	BusinessID   uuid.UUID `json:"business_id" db:"business_id"`
	ProductID    uuid.UUID `json:"product_id" db:"product_id"`
	QuantitySold int       `json:"quantity_sold" db:"quantity_sold"`
	PricePerUnit float64   `json:"price_per_unit" db:"price_per_unit"`
	Discount     float64   `json:"discount" db:"discount"`
	CostPerUnit  float64   `json:"cost_per_unit" db:"cost_per_unit"`
}

// SaleSummary is the list/recent-sales projection joined with the recording user.
type SaleSummary struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	TotalAmount  float64   `json:"total_amount" db:"total_amount"`
	SaleDate     time.Time `json:"sale_date" db:"sale_date"`
	Username     *string   `json:"username" db:"username"`
}

// SaleItemDetail is one line of the sale-detail view, joined with the product.
type SaleItemDetail struct {
	ProductName  string  `json:"product_name" db:"product_name"`
	SKU          string  `json:"sku" db:"sku"`
	QuantitySold int     `json:"quantity_sold" db:"quantity_sold"`
	PricePerUnit float64 `json:"price_per_unit" db:"price_per_unit"`
	Discount     float64 `json:"discount" db:"discount"`
	CostPerUnit  float64 `json:"cost_per_unit" db:"cost_per_unit"`
}

type SaleDetail struct {
	ID           uuid.UUID        `json:"id"`
	CustomerName string           `json:"customer_name"`
	TotalAmount  float64          `json:"total_amount"`
	SaleDate     time.Time        `json:"sale_date"`
	Username     string           `json:"username"`
	Items        []SaleItemDetail `json:"items"`
}
