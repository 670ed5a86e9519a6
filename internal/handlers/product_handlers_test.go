package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartstock/internal/common"
	"smartstock/internal/models"
	"smartstock/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductService) BulkCreate(ctx context.Context, products []*models.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductService) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	args := m.Called(ctx, businessID, id)
	return args.Error(0)
}

func (m *MockProductService) List(ctx context.Context, businessID uuid.UUID, sku string) ([]*models.Product, error) {
	args := m.Called(ctx, businessID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) LowStock(ctx context.Context, businessID uuid.UUID, threshold int) ([]*models.LowStockProduct, error) {
	args := m.Called(ctx, businessID, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LowStockProduct), args.Error(1)
}

// newProductContext builds an echo context carrying the identity claims the
// JWT middleware would have set. businessID may be nil for users not yet
// attached to a business.
func newProductContext(method, target, body string, businessID *uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	ctx := context.WithValue(req.Context(), common.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, common.RoleKey, models.RoleUser)
	if businessID != nil {
		ctx = context.WithValue(ctx, common.BusinessIDKey, *businessID)
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListProducts_NoBusinessReturnsEmptyArray(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 10)

	c, rec := newProductContext(http.MethodGet, "/api/products", "", nil)

	err := h.ListProducts(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	svc.AssertNotCalled(t, "List")
}

func TestListProducts_ScopedToBusiness(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 10)
	businessID := uuid.New()

	svc.On("List", mock.Anything, businessID, "").Return([]*models.Product{
		{ID: uuid.New(), BusinessID: businessID, Name: "Widget", SKU: "WID-1", Price: 25},
	}, nil)

	c, rec := newProductContext(http.MethodGet, "/api/products", "", &businessID)

	err := h.ListProducts(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget")
	svc.AssertExpectations(t)
}

func TestCreateProduct_NoBusinessForbidden(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 10)

	c, _ := newProductContext(http.MethodPost, "/api/products", `{"name":"Widget","sku":"WID-1","price":25}`, nil)

	err := h.CreateProduct(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestCreateProduct_MissingFields(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 10)
	businessID := uuid.New()

	c, _ := newProductContext(http.MethodPost, "/api/products", `{"name":"Widget"}`, &businessID)

	err := h.CreateProduct(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Name, SKU, and Price are required", httpErr.Message)
}

func TestCreateProduct_Success(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 10)
	businessID := uuid.New()

	svc.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.BusinessID == businessID && p.Name == "Widget" && p.SKU == "WID-1"
	})).Return(nil)

	c, rec := newProductContext(http.MethodPost, "/api/products", `{"name":"Widget","sku":"WID-1","price":25}`, &businessID)

	err := h.CreateProduct(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateProduct_OtherBusinessNotFound(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 10)
	businessID := uuid.New()
	productID := uuid.New()

	svc.On("Update", mock.Anything, mock.Anything).Return(repositories.ErrNotFound)

	c, _ := newProductContext(http.MethodPut, "/api/products/"+productID.String(), `{"name":"Widget","sku":"WID-1","price":25}`, &businessID)
	c.SetParamNames("id")
	c.SetParamValues(productID.String())

	err := h.UpdateProduct(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestDeleteProduct_InvalidID(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 10)
	businessID := uuid.New()

	c, _ := newProductContext(http.MethodDelete, "/api/products/nope", "", &businessID)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.DeleteProduct(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	svc.AssertNotCalled(t, "Delete")
}

func TestListLowStock_UsesConfiguredThreshold(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandlers(svc, 7)
	businessID := uuid.New()

	svc.On("LowStock", mock.Anything, businessID, 7).Return([]*models.LowStockProduct{}, nil)

	c, rec := newProductContext(http.MethodGet, "/api/products/low-stock", "", &businessID)

	err := h.ListLowStock(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
