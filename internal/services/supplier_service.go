package services

import (
	"context"

	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID) ([]*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	return s.supplierRepo.Create(ctx, supplier)
}

func (s *supplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	return s.supplierRepo.Update(ctx, supplier)
}

func (s *supplierService) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	return s.supplierRepo.Delete(ctx, businessID, id)
}

func (s *supplierService) List(ctx context.Context, businessID uuid.UUID) ([]*models.Supplier, error) {
	return s.supplierRepo.List(ctx, businessID)
}
