package repositories

import (
	"context"
	"time"

	"smartstock/internal/models"

	"github.com/google/uuid"
)

// ReportRepository serves the read-only aggregate queries behind the dashboard
// and sales reports. Every query COALESCEs its aggregates so a business with no
// rows gets zeros back, never nulls or errors.
type ReportRepository interface {
	DashboardStats(ctx context.Context, businessID uuid.UUID) (*models.DashboardStats, error)
	TopProducts(ctx context.Context, businessID uuid.UUID, limit int) ([]models.TopProduct, error)
	RecentSales(ctx context.Context, businessID uuid.UUID, limit int) ([]models.SaleSummary, error)
	RangeSummary(ctx context.Context, businessID uuid.UUID, start, end time.Time) (*models.SalesReportSummary, error)
	RangeDetails(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]models.SaleSummary, error)
	SalesOverTime(ctx context.Context, businessID uuid.UUID, days int) ([]models.SalesByDay, error)
}

type reportRepo struct {
	db Database
}

func NewReportRepository(db Database) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) DashboardStats(ctx context.Context, businessID uuid.UUID) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	query := `
		SELECT COALESCE(COUNT(id), 0), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0)
		FROM products
		WHERE business_id = $1
	`
	if err := r.db.QueryRow(ctx, query, businessID).Scan(&stats.TotalProducts, &stats.TotalStock, &stats.TotalValue); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *reportRepo) TopProducts(ctx context.Context, businessID uuid.UUID, limit int) ([]models.TopProduct, error) {
	query := `
		SELECT p.name, COALESCE(SUM(si.quantity_sold), 0)
		FROM sale_items si
		JOIN products p ON si.product_id = p.id AND si.business_id = p.business_id
		WHERE si.business_id = $1
		GROUP BY p.name
		ORDER BY 2 DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, businessID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.TopProduct{}
	for rows.Next() {
		product := models.TopProduct{}
		if err := rows.Scan(&product.Name, &product.TotalSold); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *reportRepo) RecentSales(ctx context.Context, businessID uuid.UUID, limit int) ([]models.SaleSummary, error) {
	query := `
		SELECT s.id, s.customer_name, s.total_amount, s.sale_date, u.username
		FROM sales s
		LEFT JOIN users u ON s.user_id = u.id
		WHERE s.business_id = $1
		ORDER BY s.sale_date DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, businessID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []models.SaleSummary{}
	for rows.Next() {
		sale := models.SaleSummary{}
		if err := rows.Scan(&sale.ID, &sale.CustomerName, &sale.TotalAmount, &sale.SaleDate, &sale.Username); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (r *reportRepo) RangeSummary(ctx context.Context, businessID uuid.UUID, start, end time.Time) (*models.SalesReportSummary, error) {
	summary := &models.SalesReportSummary{}
	query := `
		SELECT
			COALESCE(COUNT(DISTINCT s.id), 0) AS total_sales,
			COALESCE(SUM(si.quantity_sold * si.price_per_unit), 0) AS total_revenue,
			COALESCE(SUM(si.discount), 0) AS total_discount,
			COALESCE(SUM(si.quantity_sold * COALESCE(si.cost_per_unit, 0)), 0) AS total_cost,
			COALESCE(SUM(si.quantity_sold * si.price_per_unit) - SUM(si.discount) - SUM(si.quantity_sold * COALESCE(si.cost_per_unit, 0)), 0) AS gross_profit
		FROM sales s
		JOIN sale_items si ON s.id = si.sale_id
		WHERE s.sale_date >= $1 AND s.sale_date < $2 AND s.business_id = $3
	`
	if err := r.db.QueryRow(ctx, query, start, end, businessID).Scan(&summary.TotalSales, &summary.TotalRevenue, &summary.TotalDiscount, &summary.TotalCost, &summary.GrossProfit); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *reportRepo) RangeDetails(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]models.SaleSummary, error) {
	query := `
		SELECT s.id, s.customer_name, s.total_amount, s.sale_date, u.username
		FROM sales s
		JOIN users u ON s.user_id = u.id
		WHERE s.sale_date >= $1 AND s.sale_date < $2 AND s.business_id = $3
		ORDER BY s.sale_date DESC
	`
	rows, err := r.db.Query(ctx, query, start, end, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []models.SaleSummary{}
	for rows.Next() {
		sale := models.SaleSummary{}
		if err := rows.Scan(&sale.ID, &sale.CustomerName, &sale.TotalAmount, &sale.SaleDate, &sale.Username); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (r *reportRepo) SalesOverTime(ctx context.Context, businessID uuid.UUID, days int) ([]models.SalesByDay, error) {
	query := `
		SELECT sale_date::date AS date, SUM(total_amount) AS total
		FROM sales
		WHERE sale_date >= CURRENT_DATE - make_interval(days => $2) AND business_id = $1
		GROUP BY sale_date::date
		ORDER BY date ASC
	`
	rows, err := r.db.Query(ctx, query, businessID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := []models.SalesByDay{}
	for rows.Next() {
		point := models.SalesByDay{}
		if err := rows.Scan(&point.Date, &point.Total); err != nil {
			return nil, err
		}
		series = append(series, point)
	}
	return series, rows.Err()
}
