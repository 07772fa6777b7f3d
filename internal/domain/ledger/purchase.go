package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// Purchase records units of a product bought into stock
type Purchase struct {
	shared.TenantEntity
	ProductID uuid.UUID
	BrandID   uuid.UUID
	FirmID    *uuid.UUID
	CreatedBy uuid.UUID
	Quantity  int
	Price     decimal.Decimal // unit purchase price
}

// PurchaseInput carries the caller-editable fields of a purchase
type PurchaseInput struct {
	ProductID uuid.UUID
	BrandID   uuid.UUID
	FirmID    *uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// Validate checks the input before any store is consulted
func (in PurchaseInput) Validate() error {
	if in.ProductID == uuid.Nil {
		return shared.Validation("Please select a product")
	}
	return validateLine(in.Quantity, in.Price)
}

// NewPurchase creates a purchase from validated input
func NewPurchase(tenantID, createdBy uuid.UUID, in PurchaseInput) (*Purchase, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &Purchase{
		TenantEntity: shared.NewTenantEntity(tenantID),
		CreatedBy:    createdBy,
	}
	p.apply(in)
	return p, nil
}

// Revise replaces the editable fields of the purchase
func (p *Purchase) Revise(in PurchaseInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	p.apply(in)
	p.Touch()
	return nil
}

func (p *Purchase) apply(in PurchaseInput) {
	p.ProductID = in.ProductID
	p.BrandID = in.BrandID
	p.FirmID = in.FirmID
	p.Quantity = in.Quantity
	p.Price = in.Price
}

// Amount returns price × quantity
func (p *Purchase) Amount() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
