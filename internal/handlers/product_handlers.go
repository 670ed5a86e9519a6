package handlers

import (
	"errors"
	"log"
	"net/http"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"
	"smartstock/internal/services"

	"github.com/labstack/echo/v4"
)

type ProductHandlers struct {
	productService    services.ProductService
	lowStockThreshold int
}

func NewProductHandlers(productService services.ProductService, lowStockThreshold int) *ProductHandlers {
	return &ProductHandlers{
		productService:    productService,
		lowStockThreshold: lowStockThreshold,
	}
}

// ListProducts returns the business's catalog, optionally filtered by SKU.
// A user without a business gets an empty list, not an error.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusOK, []*models.Product{})
	}

	products, err := h.productService.List(ctx, businessID, c.QueryParam("sku"))
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch products")
	}
	if products == nil {
		products = []*models.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

// ListLowStock returns products at or below the configured stock threshold.
func (h *ProductHandlers) ListLowStock(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusOK, []*models.LowStockProduct{})
	}

	products, err := h.productService.LowStock(ctx, businessID, h.lowStockThreshold)
	if err != nil {
		log.Printf("Error fetching low stock products: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch low stock products")
	}
	if products == nil {
		products = []*models.LowStockProduct{}
	}
	return c.JSON(http.StatusOK, products)
}

type ProductRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	CostPrice   float64 `json:"cost_price"`
}

func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" || req.SKU == "" || req.Price == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, SKU, and Price are required")
	}

	product := &models.Product{
		BusinessID:  businessID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
	}
	if err := h.productService.Create(ctx, product); err != nil {
		log.Printf("Error adding product: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add product")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":    "Product added successfully!",
		"insertedId": product.ID,
	})
}

// BulkCreateProducts imports a whole catalog in one call.
func (h *ProductHandlers) BulkCreateProducts(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	var reqs []ProductRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Products data is required in an array format")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Products data is required in an array format")
	}

	products := make([]*models.Product, 0, len(reqs))
	for _, req := range reqs {
		products = append(products, &models.Product{
			BusinessID:  businessID,
			Name:        req.Name,
			SKU:         req.SKU,
			Description: req.Description,
			Quantity:    req.Quantity,
			Price:       req.Price,
			CostPrice:   req.CostPrice,
		})
	}
	if err := h.productService.BulkCreate(ctx, products); err != nil {
		log.Printf("Error importing products: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to import products")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":  "Products imported successfully!",
		"imported": len(products),
	})
}

func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	id, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" || req.SKU == "" || req.Price == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, SKU, and Price are required")
	}

	product := &models.Product{
		ID:          id,
		BusinessID:  businessID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
	}
	if err := h.productService.Update(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found or you don't have permission")
		}
		log.Printf("Error updating product: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product updated successfully!"})
}

func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "User is not associated with a business")
	}

	id, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.productService.Delete(ctx, businessID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found or you don't have permission")
		}
		log.Printf("Error deleting product: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully!"})
}
