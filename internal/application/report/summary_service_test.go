package report_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appreport "github.com/stockroom/backoffice/internal/application/report"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence"
	"github.com/stockroom/backoffice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryEnv struct {
	svc        *appreport.SummaryService
	categories *persistence.GormCategoryRepository
	products   *persistence.GormProductRepository
	tenantID   uuid.UUID
	brand      *catalog.Brand
}

func newSummaryEnv(t *testing.T) *summaryEnv {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	tenantID := testutil.TestTenantID()

	brand, err := catalog.NewBrand(tenantID, "Acme", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormBrandRepository(db).Save(context.Background(), brand))

	categories := persistence.NewGormCategoryRepository(db)
	products := persistence.NewGormProductRepository(db)
	return &summaryEnv{
		svc:        appreport.NewSummaryService(categories, products, persistence.NewGormSummaryRepository(db)),
		categories: categories,
		products:   products,
		tenantID:   tenantID,
		brand:      brand,
	}
}

func (e *summaryEnv) category(t *testing.T, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(e.tenantID, name)
	require.NoError(t, err)
	require.NoError(t, e.categories.Save(context.Background(), c))
	return c
}

func (e *summaryEnv) product(t *testing.T, c *catalog.Category, name string, purchased, sold int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(e.tenantID, name, c.ID, e.brand.ID, decimal.NewFromInt(10))
	require.NoError(t, err)
	p.PurchaseCount = purchased
	p.SoldCount = sold
	require.NoError(t, e.products.Save(context.Background(), p))
	return p
}

func TestSummaryService_EmptyCategoryWireShape(t *testing.T) {
	env := newSummaryEnv(t)
	c := env.category(t, "Empty")

	resp, err := env.svc.CategorySummary(context.Background(), env.tenantID, c.ID)
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))

	assert.Equal(t, 0.0, wire["productCount"])
	assert.Contains(t, wire, "mostPurchased")
	assert.Nil(t, wire["mostPurchased"])
	assert.Contains(t, wire, "mostSold")
	assert.Nil(t, wire["mostSold"])
	assert.Equal(t, []any{}, wire["topBuyers"])
	assert.Equal(t, []any{}, wire["topSellers"])
	assert.Equal(t, 0.0, wire["totalSpent"])
}

func TestSummaryService_MostPurchasedAndSold(t *testing.T) {
	env := newSummaryEnv(t)
	stringed := env.category(t, "Strings")
	env.product(t, stringed, "A", 5, 4)
	b := env.product(t, stringed, "B", 12, 1)
	other := env.category(t, "Drums")
	env.product(t, other, "Kit", 99, 99)

	resp, err := env.svc.CategorySummary(context.Background(), env.tenantID, stringed.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.ProductCount)
	require.NotNil(t, resp.MostPurchased)
	assert.Equal(t, b.ID, resp.MostPurchased.ID)
	assert.Equal(t, "B", resp.MostPurchased.Name)
	assert.Equal(t, 12, resp.MostPurchased.Count)
	require.NotNil(t, resp.MostSold)
	assert.Equal(t, "A", resp.MostSold.Name)
	assert.Equal(t, 4, resp.MostSold.Count)
	assert.NotNil(t, resp.TopBuyers)
	assert.NotNil(t, resp.TopSellers)
}

func TestSummaryService_UnknownCategory(t *testing.T) {
	env := newSummaryEnv(t)

	_, err := env.svc.CategorySummary(context.Background(), env.tenantID, uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "Category not found", err.Error())
}
