package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/catalog"
)

// TopPartyLimit is how many buyers and sellers a category summary ranks
const TopPartyLimit = 3

// ProductCount names a product together with one of its counters
type ProductCount struct {
	ProductID uuid.UUID
	Name      string
	Count     int
}

// PartyTotal is the number of units a buyer bought or a seller sold
type PartyTotal struct {
	ID       uuid.UUID
	Quantity int64
}

// LedgerTotals are the money totals of the ledger rows of a category
type LedgerTotals struct {
	Spent  decimal.Decimal
	Gained decimal.Decimal
}

// Profit returns gained − spent
func (t LedgerTotals) Profit() decimal.Decimal {
	return t.Gained.Sub(t.Spent)
}

// CategorySummary is computed fresh per request and never persisted
type CategorySummary struct {
	CategoryID    uuid.UUID
	ProductCount  int64
	MostPurchased *ProductCount
	MostSold      *ProductCount
	TopBuyers     []PartyTotal
	TopSellers    []PartyTotal
	Totals        LedgerTotals
}

// NewCategorySummary returns an empty summary for the category
func NewCategorySummary(categoryID uuid.UUID) *CategorySummary {
	return &CategorySummary{
		CategoryID: categoryID,
		TopBuyers:  make([]PartyTotal, 0),
		TopSellers: make([]PartyTotal, 0),
		Totals:     LedgerTotals{Spent: decimal.Zero, Gained: decimal.Zero},
	}
}

// MostPurchased picks the product with the highest purchase count
func MostPurchased(products []catalog.Product) *ProductCount {
	return pickMost(products, func(p *catalog.Product) int { return p.PurchaseCount })
}

// MostSold picks the product with the highest sold count
func MostSold(products []catalog.Product) *ProductCount {
	return pickMost(products, func(p *catalog.Product) int { return p.SoldCount })
}

// pickMost keeps the first product seen on ties, so callers must pass
// products in their natural order. It returns nil only for an empty list.
func pickMost(products []catalog.Product, metric func(*catalog.Product) int) *ProductCount {
	var best *ProductCount
	for i := range products {
		p := &products[i]
		n := metric(p)
		if best == nil || n > best.Count {
			best = &ProductCount{ProductID: p.ID, Name: p.Name, Count: n}
		}
	}
	return best
}

// SummaryRepository runs the ledger aggregations behind a category summary
type SummaryRepository interface {
	// TopBuyers groups the category's sells by buyer, summing quantity,
	// largest first. Sells without a buyer are skipped.
	TopBuyers(ctx context.Context, tenantID, categoryID uuid.UUID, limit int) ([]PartyTotal, error)

	// TopSellers groups the category's sells by seller, summing quantity, largest first
	TopSellers(ctx context.Context, tenantID, categoryID uuid.UUID, limit int) ([]PartyTotal, error)

	// Totals sums purchase cost and sell revenue over the category's products
	Totals(ctx context.Context, tenantID, categoryID uuid.UUID) (LedgerTotals, error)
}
