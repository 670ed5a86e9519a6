package services

import (
	"context"
	"log"

	"smartstock/internal/caching"
	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/google/uuid"
)

// ProductService wraps the product repository and keeps the cached dashboard
// aggregates honest: every mutation drops the business's cache entry.
type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	BulkCreate(ctx context.Context, products []*models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, sku string) ([]*models.Product, error)
	LowStock(ctx context.Context, businessID uuid.UUID, threshold int) ([]*models.LowStockProduct, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	cacheSvc    caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, cacheSvc caching.CacheService) ProductService {
	return &productService{
		productRepo: productRepo,
		cacheSvc:    cacheSvc,
	}
}

func (s *productService) invalidate(ctx context.Context, businessID uuid.UUID) {
	if err := s.cacheSvc.InvalidateBusiness(ctx, businessID); err != nil {
		log.Printf("Failed to invalidate dashboard cache for business %s: %v", businessID, err)
	}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx, product.BusinessID)
	return nil
}

func (s *productService) BulkCreate(ctx context.Context, products []*models.Product) error {
	for _, product := range products {
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
	}
	if err := s.productRepo.BulkCreate(ctx, products); err != nil {
		return err
	}
	if len(products) > 0 {
		s.invalidate(ctx, products[0].BusinessID)
	}
	return nil
}

func (s *productService) Update(ctx context.Context, product *models.Product) error {
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx, product.BusinessID)
	return nil
}

func (s *productService) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, businessID, id); err != nil {
		return err
	}
	s.invalidate(ctx, businessID)
	return nil
}

func (s *productService) List(ctx context.Context, businessID uuid.UUID, sku string) ([]*models.Product, error) {
	return s.productRepo.List(ctx, businessID, sku)
}

func (s *productService) LowStock(ctx context.Context, businessID uuid.UUID, threshold int) ([]*models.LowStockProduct, error) {
	return s.productRepo.LowStock(ctx, businessID, threshold)
}
