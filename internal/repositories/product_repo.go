package repositories

import (
	"context"
	"errors"

	"smartstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	BulkCreate(ctx context.Context, products []*models.Product) error
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, sku string) ([]*models.Product, error)
	LowStock(ctx context.Context, businessID uuid.UUID, threshold int) ([]*models.LowStockProduct, error)
}

type productRepo struct {
	db Database
}

func NewProductRepository(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, business_id, name, sku, description, quantity, price, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.BusinessID, product.Name, product.SKU, product.Description, product.Quantity, product.Price, product.CostPrice)
	return err
}

// BulkCreate inserts every product or none: the whole import runs in one
// transaction so a bad row cannot leave a partial catalog behind.
func (r *productRepo) BulkCreate(ctx context.Context, products []*models.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (id, business_id, name, sku, description, quantity, price, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	for _, product := range products {
		if _, err := tx.Exec(ctx, query, product.ID, product.BusinessID, product.Name, product.SKU, product.Description, product.Quantity, product.Price, product.CostPrice); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *productRepo) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, business_id, name, sku, description, quantity, price, cost_price, created_at, updated_at
		FROM products
		WHERE business_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, businessID, id).Scan(&product.ID, &product.BusinessID, &product.Name, &product.SKU, &product.Description, &product.Quantity, &product.Price, &product.CostPrice, &product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, sku = $2, description = $3, quantity = $4, price = $5, cost_price = $6, updated_at = NOW()
		WHERE business_id = $7 AND id = $8
	`
	tag, err := r.db.Exec(ctx, query, product.Name, product.SKU, product.Description, product.Quantity, product.Price, product.CostPrice, product.BusinessID, product.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE business_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, businessID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, businessID uuid.UUID, sku string) ([]*models.Product, error) {
	query := `
		SELECT id, business_id, name, sku, description, quantity, price, cost_price, created_at, updated_at
		FROM products
		WHERE business_id = $1
		ORDER BY created_at DESC
	`
	args := []any{businessID}
	if sku != "" {
		query = `
		SELECT id, business_id, name, sku, description, quantity, price, cost_price, created_at, updated_at
		FROM products
		WHERE business_id = $1 AND sku = $2
		ORDER BY created_at DESC
	`
		args = append(args, sku)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.BusinessID, &product.Name, &product.SKU, &product.Description, &product.Quantity, &product.Price, &product.CostPrice, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) LowStock(ctx context.Context, businessID uuid.UUID, threshold int) ([]*models.LowStockProduct, error) {
	query := `
		SELECT id, name, quantity
		FROM products
		WHERE business_id = $1 AND quantity <= $2
		ORDER BY quantity ASC
	`
	rows, err := r.db.Query(ctx, query, businessID, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.LowStockProduct
	for rows.Next() {
		product := &models.LowStockProduct{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Quantity); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
