package repositories

import (
	"context"
	"time"

	"smartstock/internal/models"

	"github.com/google/uuid"
)

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *models.Sale, items []*models.SaleItem) error
	List(ctx context.Context, businessID uuid.UUID, search string) ([]*models.SaleSummary, error)
	GetDetail(ctx context.Context, businessID, saleID uuid.UUID) (*models.SaleDetail, error)
}

type saleRepo struct {
	db Database
}

func NewSaleRepository(db Database) SaleRepository {
	return &saleRepo{db: db}
}

// CreateSale records a sale, its line items and the matching stock decrements
// in one transaction. Stock updates are relative (quantity = quantity - N) so
// concurrent sales against the same product cannot lose updates; the decrement
// is scoped to the sale's business id, so an item referencing another tenant's
// product id leaves that product untouched.
func (r *saleRepo) CreateSale(ctx context.Context, sale *models.Sale, items []*models.SaleItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	saleQuery := `
		INSERT INTO sales (id, business_id, user_id, customer_name, total_amount, sale_date)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := tx.Exec(ctx, saleQuery, sale.ID, sale.BusinessID, sale.UserID, sale.CustomerName, sale.TotalAmount); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, business_id, product_id, quantity_sold, price_per_unit, discount, cost_per_unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery, item.ID, sale.ID, sale.BusinessID, item.ProductID, item.QuantitySold, item.PricePerUnit, item.Discount, item.CostPerUnit); err != nil {
			return err
		}
	}

	// One decrement per distinct product, summed across its items, in
	// first-seen order. Zero rows affected means the product id belongs to
	// another business; that is deliberately a no-op, not an error.
	totals := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, item := range items {
		if _, seen := totals[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		totals[item.ProductID] += item.QuantitySold
	}

	stockQuery := `
		UPDATE products
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND business_id = $3
	`
	for _, productID := range order {
		if _, err := tx.Exec(ctx, stockQuery, totals[productID], productID, sale.BusinessID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *saleRepo) List(ctx context.Context, businessID uuid.UUID, search string) ([]*models.SaleSummary, error) {
	query := `
		SELECT s.id, s.customer_name, s.total_amount, s.sale_date, u.username
		FROM sales s
		LEFT JOIN users u ON s.user_id = u.id
		WHERE s.business_id = $1
		ORDER BY s.sale_date DESC
	`
	args := []any{businessID}
	if search != "" {
		query = `
		SELECT s.id, s.customer_name, s.total_amount, s.sale_date, u.username
		FROM sales s
		LEFT JOIN users u ON s.user_id = u.id
		WHERE s.business_id = $1 AND (s.customer_name ILIKE $2 OR s.id::text = $3)
		ORDER BY s.sale_date DESC
	`
		args = append(args, "%"+search+"%", search)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.SaleSummary
	for rows.Next() {
		sale := &models.SaleSummary{}
		if err := rows.Scan(&sale.ID, &sale.CustomerName, &sale.TotalAmount, &sale.SaleDate, &sale.Username); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (r *saleRepo) GetDetail(ctx context.Context, businessID, saleID uuid.UUID) (*models.SaleDetail, error) {
	query := `
		SELECT si.quantity_sold, si.price_per_unit, si.discount, si.cost_per_unit,
		       p.name AS product_name, p.sku,
		       s.customer_name, s.total_amount, s.sale_date,
		       u.username
		FROM sale_items si
		JOIN products p ON si.product_id = p.id
		JOIN sales s ON si.sale_id = s.id
		JOIN users u ON s.user_id = u.id
		WHERE si.sale_id = $1 AND s.business_id = $2
	`
	rows, err := r.db.Query(ctx, query, saleID, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detail *models.SaleDetail
	for rows.Next() {
		item := models.SaleItemDetail{}
		var customerName, username string
		var totalAmount float64
		var saleDate time.Time
		if err := rows.Scan(&item.QuantitySold, &item.PricePerUnit, &item.Discount, &item.CostPerUnit, &item.ProductName, &item.SKU, &customerName, &totalAmount, &saleDate, &username); err != nil {
			return nil, err
		}
		if detail == nil {
			detail = &models.SaleDetail{
				ID:           saleID,
				CustomerName: customerName,
				TotalAmount:  totalAmount,
				SaleDate:     saleDate,
				Username:     username,
			}
		}
		detail.Items = append(detail.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}
	return detail, nil
}
