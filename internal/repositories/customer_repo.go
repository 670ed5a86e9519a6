package repositories

import (
	"context"

	"smartstock/internal/models"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID) ([]*models.Customer, error)
}

type customerRepo struct {
	db Database
}

func NewCustomerRepository(db Database) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, business_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.BusinessID, customer.Name, customer.Email, customer.Phone, customer.Address)
	return err
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE business_id = $5 AND id = $6
	`
	tag, err := r.db.Exec(ctx, query, customer.Name, customer.Email, customer.Phone, customer.Address, customer.BusinessID, customer.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE business_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, businessID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepo) List(ctx context.Context, businessID uuid.UUID) ([]*models.Customer, error) {
	query := `
		SELECT id, business_id, name, email, phone, address, created_at, updated_at
		FROM customers
		WHERE business_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.BusinessID, &customer.Name, &customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}
