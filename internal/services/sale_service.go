package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"smartstock/internal/caching"
	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/google/uuid"
)

// ErrInvalidSale marks requests rejected before any storage call.
var ErrInvalidSale = errors.New("missing required sale data")

// SaleItemInput is one requested line of a sale. Discount is optional and
// defaults to zero.
type SaleItemInput struct {
	ProductID    uuid.UUID `json:"product_id"`
	QuantitySold int       `json:"quantity_sold"`
	PricePerUnit float64   `json:"price_per_unit"`
	Discount     *float64  `json:"discount"`
	CostPerUnit  float64   `json:"cost_per_unit"`
}

type SaleService interface {
	CreateSale(ctx context.Context, businessID, userID uuid.UUID, customerName string, totalAmount *float64, items []SaleItemInput) (*models.Sale, error)
	ListSales(ctx context.Context, businessID uuid.UUID, search string) ([]*models.SaleSummary, error)
	GetSaleDetail(ctx context.Context, businessID, saleID uuid.UUID) (*models.SaleDetail, error)
}

type saleService struct {
	saleRepo repositories.SaleRepository
	cacheSvc caching.CacheService
}

func NewSaleService(saleRepo repositories.SaleRepository, cacheSvc caching.CacheService) SaleService {
	return &saleService{
		saleRepo: saleRepo,
		cacheSvc: cacheSvc,
	}
}

// CreateSale validates the request, then hands the sale, its items and the
// stock decrements to the repository as one atomic unit. Nothing is written
// when validation fails.
func (s *saleService) CreateSale(ctx context.Context, businessID, userID uuid.UUID, customerName string, totalAmount *float64, items []SaleItemInput) (*models.Sale, error) {
	if totalAmount == nil || len(items) == 0 {
		return nil, ErrInvalidSale
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: product_id is required for every item", ErrInvalidSale)
		}
		if item.QuantitySold <= 0 {
			return nil, fmt.Errorf("%w: quantity_sold must be positive", ErrInvalidSale)
		}
	}

	sale := &models.Sale{
		ID:           uuid.New(),
		BusinessID:   businessID,
		UserID:       userID,
		CustomerName: customerName,
		TotalAmount:  *totalAmount,
	}

	saleItems := make([]*models.SaleItem, 0, len(items))
	for _, item := range items {
		discount := 0.0
		if item.Discount != nil {
			discount = *item.Discount
		}
		saleItems = append(saleItems, &models.SaleItem{
			ID:           uuid.New(),
			SaleID:       sale.ID,
			BusinessID:   businessID,
			ProductID:    item.ProductID,
			QuantitySold: item.QuantitySold,
			PricePerUnit: item.PricePerUnit,
			Discount:     discount,
			CostPerUnit:  item.CostPerUnit,
		})
	}

	if err := s.saleRepo.CreateSale(ctx, sale, saleItems); err != nil {
		return nil, err
	}

	if err := s.cacheSvc.InvalidateBusiness(ctx, businessID); err != nil {
		log.Printf("Failed to invalidate dashboard cache for business %s: %v", businessID, err)
	}

	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, businessID uuid.UUID, search string) ([]*models.SaleSummary, error) {
	return s.saleRepo.List(ctx, businessID, search)
}

func (s *saleService) GetSaleDetail(ctx context.Context, businessID, saleID uuid.UUID) (*models.SaleDetail, error) {
	return s.saleRepo.GetDetail(ctx, businessID, saleID)
}
