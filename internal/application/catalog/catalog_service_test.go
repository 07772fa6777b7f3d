package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates a category with a unique name", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories, new(MockProductRepository))

		categories.On("ExistsByName", ctx, tenantID, "Phones", uuid.Nil).Return(false, nil)
		categories.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CategoryRequest{Name: "  Phones "})
		require.NoError(t, err)
		assert.Equal(t, "Phones", resp.Name)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		categories.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories, new(MockProductRepository))

		categories.On("ExistsByName", ctx, tenantID, "Phones", uuid.Nil).Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CategoryRequest{Name: "Phones"})
		assert.ErrorIs(t, err, shared.ErrConflict)
		categories.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty name before touching the store", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories, new(MockProductRepository))

		_, err := svc.Create(ctx, tenantID, CategoryRequest{Name: "   "})
		assert.ErrorIs(t, err, shared.ErrValidation)
		categories.AssertExpectations(t)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	category, err := catalog.NewCategory(tenantID, "Phones")
	require.NoError(t, err)

	t.Run("refuses while products reference it", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		products := new(MockProductRepository)
		svc := NewCategoryService(categories, products)

		categories.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		products.On("CountByCategory", ctx, tenantID, category.ID).Return(int64(2), nil)

		err := svc.Delete(ctx, tenantID, category.ID)
		assert.ErrorIs(t, err, shared.ErrConflict)
		categories.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes an unused category", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		products := new(MockProductRepository)
		svc := NewCategoryService(categories, products)

		categories.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		products.On("CountByCategory", ctx, tenantID, category.ID).Return(int64(0), nil)
		categories.On("DeleteForTenant", ctx, tenantID, category.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, category.ID))
		categories.AssertExpectations(t)
	})

	t.Run("missing category is not found", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories, new(MockProductRepository))
		id := uuid.New()

		categories.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.NotFound("Category"))

		err := svc.Delete(ctx, tenantID, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBrandService_UpdateKeepsOwnName(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	brand, err := catalog.NewBrand(tenantID, "Acme", "")
	require.NoError(t, err)

	brands := new(MockBrandRepository)
	svc := NewBrandService(brands, new(MockProductRepository))

	brands.On("FindByIDForTenant", ctx, tenantID, brand.ID).Return(brand, nil)
	brands.On("ExistsByName", ctx, tenantID, "Acme", brand.ID).Return(false, nil)
	brands.On("Save", ctx, brand).Return(nil)

	resp, err := svc.Update(ctx, tenantID, brand.ID, BrandRequest{Name: "Acme", Image: "http://img/acme.png"})
	require.NoError(t, err)
	assert.Equal(t, "http://img/acme.png", resp.Image)
	brands.AssertExpectations(t)
}

func TestBrandService_DeleteInUse(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	brand, err := catalog.NewBrand(tenantID, "Acme", "")
	require.NoError(t, err)

	brands := new(MockBrandRepository)
	products := new(MockProductRepository)
	svc := NewBrandService(brands, products)

	brands.On("FindByIDForTenant", ctx, tenantID, brand.ID).Return(brand, nil)
	products.On("CountByBrand", ctx, tenantID, brand.ID).Return(int64(1), nil)

	assert.ErrorIs(t, svc.Delete(ctx, tenantID, brand.ID), shared.ErrConflict)
}

func TestFirmService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID, id := uuid.New(), uuid.New()

	firms := new(MockFirmRepository)
	svc := NewFirmService(firms)
	firms.On("HasPurchases", ctx, tenantID, id).Return(true, nil).Once()

	assert.ErrorIs(t, svc.Delete(ctx, tenantID, id), shared.ErrConflict)

	firms.On("HasPurchases", ctx, tenantID, id).Return(false, nil).Once()
	firms.On("DeleteForTenant", ctx, tenantID, id).Return(nil)
	require.NoError(t, svc.Delete(ctx, tenantID, id))
	firms.AssertExpectations(t)
}

type productServiceMocks struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	brands     *MockBrandRepository
	sells      *MockSellRepository
	purchases  *MockPurchaseRepository
}

func newProductService() (*ProductService, productServiceMocks) {
	m := productServiceMocks{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		brands:     new(MockBrandRepository),
		sells:      new(MockSellRepository),
		purchases:  new(MockPurchaseRepository),
	}
	return NewProductService(m.products, m.categories, m.brands, m.sells, m.purchases), m
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	category, _ := catalog.NewCategory(tenantID, "Phones")
	brand, _ := catalog.NewBrand(tenantID, "Acme", "")

	t.Run("creates with zero stock", func(t *testing.T) {
		svc, m := newProductService()
		m.categories.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)
		m.brands.On("FindByIDForTenant", ctx, tenantID, brand.ID).Return(brand, nil)
		m.products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, ProductRequest{
			Name:       "Phone X",
			CategoryID: category.ID.String(),
			BrandID:    brand.ID.String(),
			Price:      decimal.RequireFromString("199.99"),
		})
		require.NoError(t, err)
		assert.Equal(t, 199.99, resp.Price)
		assert.Zero(t, resp.Quantity)
		assert.Equal(t, category.ID, resp.CategoryID)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		svc, m := newProductService()
		missing := uuid.New()
		m.categories.On("FindByIDForTenant", ctx, tenantID, missing).Return(nil, shared.NotFound("Category"))

		_, err := svc.Create(ctx, tenantID, ProductRequest{Name: "Phone", CategoryID: missing.String(), BrandID: brand.ID.String()})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed id is a validation error", func(t *testing.T) {
		svc, _ := newProductService()
		_, err := svc.Create(ctx, tenantID, ProductRequest{Name: "Phone", CategoryID: "nope"})
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Equal(t, "Invalid category id", err.Error())
	})

	t.Run("missing brand is a validation error", func(t *testing.T) {
		svc, m := newProductService()
		m.categories.On("FindByIDForTenant", ctx, tenantID, category.ID).Return(category, nil)

		_, err := svc.Create(ctx, tenantID, ProductRequest{Name: "Phone", CategoryID: category.ID.String()})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("refuses a product with ledger rows", func(t *testing.T) {
		svc, m := newProductService()
		p, _ := catalog.NewProduct(tenantID, "Phone", uuid.New(), uuid.New(), decimal.NewFromInt(10))
		m.products.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		m.sells.On("ExistsForProduct", ctx, tenantID, p.ID).Return(false, nil)
		m.purchases.On("ExistsForProduct", ctx, tenantID, p.ID).Return(true, nil)

		assert.ErrorIs(t, svc.Delete(ctx, tenantID, p.ID), shared.ErrConflict)
		m.products.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("counters alone block deletion", func(t *testing.T) {
		svc, m := newProductService()
		p, _ := catalog.NewProduct(tenantID, "Phone", uuid.New(), uuid.New(), decimal.NewFromInt(10))
		p.SoldCount = 1
		m.products.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)

		assert.ErrorIs(t, svc.Delete(ctx, tenantID, p.ID), shared.ErrConflict)
		m.sells.AssertNotCalled(t, "ExistsForProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		svc, m := newProductService()
		p, _ := catalog.NewProduct(tenantID, "Phone", uuid.New(), uuid.New(), decimal.NewFromInt(10))
		boom := errors.New("db down")
		m.products.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		m.sells.On("ExistsForProduct", ctx, tenantID, p.ID).Return(false, boom)

		assert.ErrorIs(t, svc.Delete(ctx, tenantID, p.ID), boom)
	})
}
