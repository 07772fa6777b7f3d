package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// Product represents a product in the catalog.
// Quantity is the stock on hand; PurchaseCount and SoldCount are cumulative
// units moved through the ledger and are maintained by ledger mutations only.
type Product struct {
	shared.TenantEntity
	Name          string
	CategoryID    uuid.UUID
	BrandID       uuid.UUID
	Price         decimal.Decimal // market price
	Image         string
	Quantity      int
	PurchaseCount int
	SoldCount     int
}

// NewProduct creates a new product with no stock
func NewProduct(tenantID uuid.UUID, name string, categoryID, brandID uuid.UUID, price decimal.Decimal) (*Product, error) {
	p := &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
	}
	if err := p.Update(name, categoryID, brandID, price); err != nil {
		return nil, err
	}
	return p, nil
}

// Update changes the descriptive attributes of the product.
// Stock counters are left untouched.
func (p *Product) Update(name string, categoryID, brandID uuid.UUID, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if err := validateName("Product", name, 200); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return shared.Validation("Product category is required")
	}
	if brandID == uuid.Nil {
		return shared.Validation("Product brand is required")
	}
	if price.IsNegative() {
		return shared.Validation("Product price cannot be negative")
	}

	p.Name = name
	p.CategoryID = categoryID
	p.BrandID = brandID
	p.Price = price
	p.Touch()
	return nil
}

// SetImage sets the product image URL
func (p *Product) SetImage(image string) {
	p.Image = strings.TrimSpace(image)
	p.Touch()
}

// CanFulfill reports whether qty units can be taken from stock
func (p *Product) CanFulfill(qty int) bool {
	return qty <= p.Quantity
}

// HasLedgerActivity reports whether any purchase or sell has touched the product
func (p *Product) HasLedgerActivity() bool {
	return p.PurchaseCount > 0 || p.SoldCount > 0
}

func validateName(kind, name string, max int) error {
	if name == "" {
		return shared.Validation("%s name is required", kind)
	}
	if utf8.RuneCountInString(name) > max {
		return shared.Validation("%s name cannot exceed %d characters", kind, max)
	}
	return nil
}
