package report

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func ref(id string) ledger.Ref {
	return ledger.Ref{ID: id}
}

func TestAveragePurchasePrice(t *testing.T) {
	products := NewCatalog([]ProductSnapshot{
		{ID: "p", Name: "Guitar", Price: d("100")},
		{ID: "q", Name: "Strings", Price: d("8")},
	})

	t.Run("falls back to assumed cost without history", func(t *testing.T) {
		got := AveragePurchasePrice("p", nil, products)
		assert.True(t, got.Equal(d("75")), "got %s", got)

		got = AveragePurchasePrice("q", []PurchaseLine{{Product: ref("p"), Quantity: 1, Price: d("1")}}, products)
		assert.True(t, got.Equal(d("8").Mul(AssumedCostRatio)), "got %s", got)
	})

	t.Run("unknown product without history costs zero", func(t *testing.T) {
		assert.True(t, AveragePurchasePrice("missing", nil, products).IsZero())
		assert.True(t, AveragePurchasePrice("missing", nil, nil).IsZero())
	})

	t.Run("weighted average over history", func(t *testing.T) {
		purchases := []PurchaseLine{
			{Product: ref("p"), Quantity: 2, Price: d("10")},
			{Product: ref("p"), Quantity: 6, Price: d("20")},
			{Product: ref("q"), Quantity: 100, Price: d("1")},
		}
		// (20 + 120) / 8
		got := AveragePurchasePrice("p", purchases, products)
		assert.True(t, got.Equal(d("17.5")), "got %s", got)
	})

	t.Run("invariant to purchase order", func(t *testing.T) {
		purchases := []PurchaseLine{
			{Product: ref("p"), Quantity: 3, Price: d("7")},
			{Product: ref("p"), Quantity: 1, Price: d("11")},
			{Product: ref("p"), Quantity: 4, Price: d("5.5")},
		}
		reversed := []PurchaseLine{purchases[2], purchases[1], purchases[0]}
		shuffled := []PurchaseLine{purchases[1], purchases[2], purchases[0]}

		want := AveragePurchasePrice("p", purchases, products)
		assert.True(t, want.Equal(AveragePurchasePrice("p", reversed, products)))
		assert.True(t, want.Equal(AveragePurchasePrice("p", shuffled, products)))
	})

	t.Run("accepts any reference shape", func(t *testing.T) {
		purchases := []PurchaseLine{{Product: ledger.Ref{ID: "p", Name: "Guitar"}, Quantity: 5, Price: d("6")}}
		assert.True(t, AveragePurchasePrice(ref("p"), purchases, products).Equal(d("6")))
		assert.True(t, AveragePurchasePrice(map[string]any{"_id": "p"}, purchases, products).Equal(d("6")))
	})
}

func TestSellProfit(t *testing.T) {
	products := NewCatalog([]ProductSnapshot{{ID: "p", Price: d("20")}})
	s := SellLine{Product: ref("p"), Quantity: 2, Price: d("25")}

	// no history: cost is 15
	assert.True(t, SellProfit(s, nil, products).Equal(d("20")))
	assert.True(t, s.Revenue().Equal(d("50")))
}

func TestRollupSells_RevenueAndProfitScenario(t *testing.T) {
	products := NewCatalog([]ProductSnapshot{{ID: "P", Name: "Pick", Price: d("9")}})
	purchases := []PurchaseLine{{Product: ref("P"), Quantity: 5, Price: d("6")}}
	sells := []SellLine{
		{Product: ref("P"), Seller: ref("u1"), Quantity: 2, Price: d("10")},
		{Product: ref("P"), Seller: ref("u2"), Quantity: 3, Price: d("12")},
	}

	assert.True(t, AveragePurchasePrice("P", purchases, products).Equal(d("6")))

	r := RollupSells(sells, purchases, products)
	assert.True(t, r.Totals.Revenue.Equal(d("56")), "revenue %s", r.Totals.Revenue)
	assert.True(t, r.Totals.Profit.Equal(d("26")), "profit %s", r.Totals.Profit)
	assert.Equal(t, 5, r.Totals.Quantity)
	assert.Equal(t, 2, r.Totals.Count)

	require.Len(t, r.PerProduct, 1)
	pr := r.PerProduct[0]
	assert.Equal(t, "Pick", pr.Name)
	assert.Equal(t, 5, pr.Quantity)
	assert.True(t, pr.AverageSellPrice.Equal(d("11.2")), "avg sell %s", pr.AverageSellPrice)
	assert.True(t, pr.AveragePurchasePrice.Equal(d("6")))
	assert.True(t, pr.AverageProfitPerUnit.Equal(d("5.2")))
	assert.True(t, pr.Profit.Equal(d("26")))

	require.Len(t, r.PerSeller, 2)
	assert.Equal(t, "u2", r.PerSeller[0].SellerID)
	assert.True(t, r.PerSeller[0].Revenue.Equal(d("36")))
	assert.True(t, r.PerSeller[0].Profit.Equal(d("18")))
	assert.Equal(t, "u1", r.PerSeller[1].SellerID)
	assert.True(t, r.PerSeller[1].Profit.Equal(d("8")))
}

func TestRollupSells_MergesSellerReferenceShapes(t *testing.T) {
	var sells []SellLine
	payload := `[
		{"_id":"s1","productId":"P","sellerId":{"_id":"u1","username":"ana"},"quantity":1,"price":10},
		{"_id":"s2","productId":{"_id":"P"},"sellerId":"u1","quantity":2,"price":"5"}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &sells))

	r := RollupSells(sells, nil, NewCatalog([]ProductSnapshot{{ID: "P", Name: "Pick", Price: d("4")}}))

	require.Len(t, r.PerSeller, 1)
	assert.Equal(t, "u1", r.PerSeller[0].SellerID)
	assert.Equal(t, "ana", r.PerSeller[0].Name)
	assert.Equal(t, 3, r.PerSeller[0].Quantity)
	assert.True(t, r.PerSeller[0].Revenue.Equal(d("20")))
	require.Len(t, r.PerProduct, 1)
}

func TestRollupSells_PartitionIsExhaustive(t *testing.T) {
	products := NewCatalog([]ProductSnapshot{
		{ID: "a", Name: "A", Price: d("10")},
		{ID: "b", Name: "B", Price: d("3")},
	})
	purchases := []PurchaseLine{{Product: ref("a"), Quantity: 4, Price: d("7.25")}}
	sells := []SellLine{
		{Product: ref("a"), Seller: ref("u1"), Quantity: 1, Price: d("12.5")},
		{Product: ref("b"), Seller: ref("u2"), Quantity: 7, Price: d("4.1")},
		{Product: ref("a"), Seller: ref("u3"), Quantity: 2, Price: d("11")},
		{Product: ref("b"), Seller: ref("u1"), Quantity: 1, Price: d("3.3")},
		{Product: ref("c"), Seller: ledger.Ref{}, Quantity: 1, Price: d("2")},
	}

	r := RollupSells(sells, purchases, products)

	want := decimal.Zero
	for _, s := range sells {
		want = want.Add(s.Price.Mul(decimal.NewFromInt(int64(s.Quantity))))
	}
	sellerSum, sellerProfit := decimal.Zero, decimal.Zero
	for _, sr := range r.PerSeller {
		sellerSum = sellerSum.Add(sr.Revenue)
		sellerProfit = sellerProfit.Add(sr.Profit)
	}
	productSum := decimal.Zero
	for _, pr := range r.PerProduct {
		productSum = productSum.Add(pr.Revenue)
	}

	assert.True(t, want.Equal(r.Totals.Revenue))
	assert.True(t, want.Equal(sellerSum), "seller sum %s, want %s", sellerSum, want)
	assert.True(t, want.Equal(productSum))
	assert.True(t, r.Totals.Profit.Equal(sellerProfit))
	assert.Len(t, r.PerSeller, 4)

	for i := 1; i < len(r.PerSeller); i++ {
		assert.False(t, r.PerSeller[i].Revenue.GreaterThan(r.PerSeller[i-1].Revenue), "sellers sorted by revenue desc")
	}
}

func TestRollupSells_Empty(t *testing.T) {
	r := RollupSells(nil, nil, nil)
	assert.NotNil(t, r.PerProduct)
	assert.NotNil(t, r.PerSeller)
	assert.True(t, r.Totals.Revenue.IsZero())
	assert.True(t, r.Totals.Profit.IsZero())
}

func TestFilterSells(t *testing.T) {
	products := NewCatalog([]ProductSnapshot{
		{ID: "a", Category: ref("c1"), Brand: ref("b1")},
		{ID: "b", Category: ref("c2"), Brand: ref("b2")},
	})
	sells := []SellLine{
		{ID: "1", Product: ref("a"), Seller: ref("u1")},
		{ID: "2", Product: ref("b"), Seller: ledger.Ref{ID: "u1", Name: "ana"}, Brand: ref("b2")},
		{ID: "3", Product: ref("b"), Seller: ref("u2")},
		{ID: "4", Product: ref("gone"), Seller: ref("u2")},
	}

	ids := func(in []SellLine) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(FilterSells(sells, products, SellFilter{})))
	assert.Equal(t, []string{"1"}, ids(FilterSells(sells, products, SellFilter{CategoryID: "c1"})))
	assert.Equal(t, []string{"2", "3"}, ids(FilterSells(sells, products, SellFilter{BrandID: "b2"})))
	assert.Equal(t, []string{"1", "2"}, ids(FilterSells(sells, products, SellFilter{SellerID: "u1"})))
	assert.Equal(t, []string{"2"}, ids(FilterSells(sells, products, SellFilter{SellerID: "u1", CategoryID: "c2"})))
	assert.Equal(t, []string{"4"}, ids(FilterSells(sells, products, SellFilter{ProductID: "gone"})))
	assert.Empty(t, FilterSells(sells, products, SellFilter{CategoryID: "none"}))
	assert.True(t, SellFilter{}.IsEmpty())
}

func TestMostPurchasedAndMostSold(t *testing.T) {
	tenantID := uuid.New()
	mk := func(name string, purchased, sold int) catalog.Product {
		p, err := catalog.NewProduct(tenantID, name, uuid.New(), uuid.New(), decimal.NewFromInt(1))
		require.NoError(t, err)
		p.PurchaseCount = purchased
		p.SoldCount = sold
		return *p
	}

	t.Run("strings scenario", func(t *testing.T) {
		products := []catalog.Product{mk("A", 5, 1), mk("B", 12, 0)}
		most := MostPurchased(products)
		require.NotNil(t, most)
		assert.Equal(t, "B", most.Name)
		assert.Equal(t, 12, most.Count)
	})

	t.Run("ties keep the first product", func(t *testing.T) {
		products := []catalog.Product{mk("A", 4, 9), mk("B", 4, 9), mk("C", 1, 2)}
		assert.Equal(t, "A", MostPurchased(products).Name)
		assert.Equal(t, "A", MostSold(products).Name)
	})

	t.Run("zero counters still name a product", func(t *testing.T) {
		products := []catalog.Product{mk("A", 0, 0)}
		require.NotNil(t, MostSold(products))
		assert.Equal(t, 0, MostSold(products).Count)
	})

	t.Run("empty category yields nil", func(t *testing.T) {
		assert.Nil(t, MostPurchased(nil))
		assert.Nil(t, MostSold([]catalog.Product{}))
	})
}

func TestNewCategorySummary(t *testing.T) {
	s := NewCategorySummary(uuid.New())
	assert.NotNil(t, s.TopBuyers)
	assert.NotNil(t, s.TopSellers)
	assert.Nil(t, s.MostPurchased)
	assert.True(t, s.Totals.Profit().IsZero())

	s.Totals = LedgerTotals{Spent: d("30"), Gained: d("56")}
	assert.True(t, s.Totals.Profit().Equal(d("26")))
}
