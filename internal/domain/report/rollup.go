package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/ledger"
)

// SellFilter narrows a sell collection. Empty fields match everything.
type SellFilter struct {
	CategoryID string
	BrandID    string
	ProductID  string
	SellerID   string
}

// IsEmpty reports whether the filter matches every sell
func (f SellFilter) IsEmpty() bool {
	return f == SellFilter{}
}

// FilterSells keeps the sells matching every set field of the filter.
// Category membership is read from the product catalog; the brand falls
// back to the product's brand when the sell does not carry one.
func FilterSells(sells []SellLine, products Catalog, f SellFilter) []SellLine {
	out := make([]SellLine, 0, len(sells))
	for _, s := range sells {
		productID := ledger.ResolveID(s.Product)
		if f.ProductID != "" && productID != f.ProductID {
			continue
		}
		if f.SellerID != "" && ledger.ResolveID(s.Seller) != f.SellerID {
			continue
		}
		product, known := products[productID]
		if f.CategoryID != "" && (!known || ledger.ResolveID(product.Category) != f.CategoryID) {
			continue
		}
		if f.BrandID != "" {
			brandID := ledger.ResolveID(s.Brand)
			if brandID == "" && known {
				brandID = ledger.ResolveID(product.Brand)
			}
			if brandID != f.BrandID {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// Totals sums a sell collection
type Totals struct {
	Count    int
	Quantity int
	Revenue  decimal.Decimal
	Profit   decimal.Decimal
}

// ProductRollup aggregates the sells of one product
type ProductRollup struct {
	ProductID            string
	Name                 string
	Quantity             int
	Revenue              decimal.Decimal
	Profit               decimal.Decimal
	AverageSellPrice     decimal.Decimal // quantity weighted
	AveragePurchasePrice decimal.Decimal
	AverageProfitPerUnit decimal.Decimal
}

// SellerRollup aggregates the sells of one seller
type SellerRollup struct {
	SellerID string
	Name     string
	Quantity int
	Revenue  decimal.Decimal
	Profit   decimal.Decimal
}

// Rollup is the result of rolling up a sell collection
type Rollup struct {
	Totals     Totals
	PerProduct []ProductRollup
	PerSeller  []SellerRollup
}

// RollupSells computes global totals, per-product averages and per-seller
// totals over sells. Every sell lands in exactly one product group and one
// seller group, so group revenues sum to the global revenue.
func RollupSells(sells []SellLine, purchases []PurchaseLine, products Catalog) Rollup {
	costs := newCostBook(purchases, products)

	result := Rollup{
		Totals:     Totals{Revenue: decimal.Zero, Profit: decimal.Zero},
		PerProduct: make([]ProductRollup, 0),
		PerSeller:  make([]SellerRollup, 0),
	}
	productIdx := make(map[string]int)
	sellerIdx := make(map[string]int)

	for _, s := range sells {
		productID := ledger.ResolveID(s.Product)
		sellerID := ledger.ResolveID(s.Seller)
		qty := decimal.NewFromInt(int64(s.Quantity))
		revenue := s.Price.Mul(qty)
		profit := s.Price.Sub(costs.average(productID)).Mul(qty)

		result.Totals.Count++
		result.Totals.Quantity += s.Quantity
		result.Totals.Revenue = result.Totals.Revenue.Add(revenue)
		result.Totals.Profit = result.Totals.Profit.Add(profit)

		i, ok := productIdx[productID]
		if !ok {
			name := s.Product.Name
			if p, known := products[productID]; known {
				name = p.Name
			}
			result.PerProduct = append(result.PerProduct, ProductRollup{
				ProductID: productID,
				Name:      name,
				Revenue:   decimal.Zero,
				Profit:    decimal.Zero,
			})
			i = len(result.PerProduct) - 1
			productIdx[productID] = i
		}
		pr := &result.PerProduct[i]
		pr.Quantity += s.Quantity
		pr.Revenue = pr.Revenue.Add(revenue)
		pr.Profit = pr.Profit.Add(profit)

		j, ok := sellerIdx[sellerID]
		if !ok {
			result.PerSeller = append(result.PerSeller, SellerRollup{
				SellerID: sellerID,
				Revenue:  decimal.Zero,
				Profit:   decimal.Zero,
			})
			j = len(result.PerSeller) - 1
			sellerIdx[sellerID] = j
		}
		sr := &result.PerSeller[j]
		if sr.Name == "" {
			sr.Name = s.Seller.Name
		}
		sr.Quantity += s.Quantity
		sr.Revenue = sr.Revenue.Add(revenue)
		sr.Profit = sr.Profit.Add(profit)
	}

	for i := range result.PerProduct {
		pr := &result.PerProduct[i]
		pr.AveragePurchasePrice = costs.average(pr.ProductID)
		if pr.Quantity > 0 {
			pr.AverageSellPrice = pr.Revenue.Div(decimal.NewFromInt(int64(pr.Quantity)))
		}
		pr.AverageProfitPerUnit = pr.AverageSellPrice.Sub(pr.AveragePurchasePrice)
	}

	sort.SliceStable(result.PerProduct, func(a, b int) bool {
		pa, pb := result.PerProduct[a], result.PerProduct[b]
		if c := pa.Revenue.Cmp(pb.Revenue); c != 0 {
			return c > 0
		}
		return pa.Name < pb.Name
	})
	sort.SliceStable(result.PerSeller, func(a, b int) bool {
		return result.PerSeller[a].Revenue.GreaterThan(result.PerSeller[b].Revenue)
	})

	return result
}
