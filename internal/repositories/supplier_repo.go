package repositories

import (
	"context"

	"smartstock/internal/models"

	"github.com/google/uuid"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID) ([]*models.Supplier, error)
}

type supplierRepo struct {
	db Database
}

func NewSupplierRepository(db Database) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, business_id, name, contact_person, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.BusinessID, supplier.Name, supplier.ContactPerson, supplier.Email, supplier.Phone, supplier.Address)
	return err
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_person = $2, email = $3, phone = $4, address = $5, updated_at = NOW()
		WHERE business_id = $6 AND id = $7
	`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactPerson, supplier.Email, supplier.Phone, supplier.Address, supplier.BusinessID, supplier.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE business_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, businessID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepo) List(ctx context.Context, businessID uuid.UUID) ([]*models.Supplier, error) {
	query := `
		SELECT id, business_id, name, contact_person, email, phone, address, created_at, updated_at
		FROM suppliers
		WHERE business_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.BusinessID, &supplier.Name, &supplier.ContactPerson, &supplier.Email, &supplier.Phone, &supplier.Address, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}
