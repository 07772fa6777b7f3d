package report

import (
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/ledger"
)

// AssumedCostRatio is the share of the market price taken as unit cost
// for a product that has never been purchased.
var AssumedCostRatio = decimal.RequireFromString("0.75")

// ProductSnapshot is the catalog view of a product used by the engine.
// JSON tags follow the product list payload so API responses decode directly.
type ProductSnapshot struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Category ledger.Ref      `json:"categoryId"`
	Brand    ledger.Ref      `json:"brandId"`
	Price    decimal.Decimal `json:"price"`
}

// PurchaseLine is one purchase as seen by the engine
type PurchaseLine struct {
	ID       string          `json:"_id"`
	Product  ledger.Ref      `json:"productId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// SellLine is one sell as seen by the engine
type SellLine struct {
	ID       string          `json:"_id"`
	Product  ledger.Ref      `json:"productId"`
	Brand    ledger.Ref      `json:"brandId"`
	Seller   ledger.Ref      `json:"sellerId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Revenue returns price × quantity
func (s SellLine) Revenue() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Catalog indexes product snapshots by id
type Catalog map[string]ProductSnapshot

// NewCatalog builds a catalog from a product list
func NewCatalog(products []ProductSnapshot) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[ledger.ResolveID(p.ID)] = p
	}
	return c
}

// Lookup resolves a product reference
func (c Catalog) Lookup(ref any) (ProductSnapshot, bool) {
	p, ok := c[ledger.ResolveID(ref)]
	return p, ok
}

// AveragePurchasePrice returns the weighted-average unit cost of a product:
// total spent over total quantity across its purchases. A product without
// purchase history falls back to AssumedCostRatio × market price, and an
// unknown product without history costs zero.
func AveragePurchasePrice(productID any, purchases []PurchaseLine, products Catalog) decimal.Decimal {
	id := ledger.ResolveID(productID)
	spent := decimal.Zero
	qty := int64(0)
	for _, p := range purchases {
		if ledger.ResolveID(p.Product) != id {
			continue
		}
		q := int64(p.Quantity)
		spent = spent.Add(p.Price.Mul(decimal.NewFromInt(q)))
		qty += q
	}
	if qty > 0 {
		return spent.Div(decimal.NewFromInt(qty))
	}
	if product, ok := products[id]; ok {
		return product.Price.Mul(AssumedCostRatio)
	}
	return decimal.Zero
}

// SellProfit returns the profit of one sell: (price − average cost) × quantity
func SellProfit(s SellLine, purchases []PurchaseLine, products Catalog) decimal.Decimal {
	cost := AveragePurchasePrice(s.Product, purchases, products)
	return s.Price.Sub(cost).Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// costBook memoises average costs for the duration of one rollup
type costBook struct {
	purchases map[string][]PurchaseLine
	products  Catalog
	averages  map[string]decimal.Decimal
}

func newCostBook(purchases []PurchaseLine, products Catalog) *costBook {
	byProduct := make(map[string][]PurchaseLine)
	for _, p := range purchases {
		id := ledger.ResolveID(p.Product)
		byProduct[id] = append(byProduct[id], p)
	}
	return &costBook{
		purchases: byProduct,
		products:  products,
		averages:  make(map[string]decimal.Decimal),
	}
}

func (b *costBook) average(productID string) decimal.Decimal {
	if avg, ok := b.averages[productID]; ok {
		return avg
	}
	avg := AveragePurchasePrice(productID, b.purchases[productID], b.products)
	b.averages[productID] = avg
	return avg
}
