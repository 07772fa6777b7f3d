package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// Sell records units of a product leaving stock
type Sell struct {
	shared.TenantEntity
	ProductID uuid.UUID
	BrandID   uuid.UUID
	SellerID  uuid.UUID
	BuyerID   *uuid.UUID
	Quantity  int
	Price     decimal.Decimal // unit sell price
}

// SellInput carries the caller-editable fields of a sell
type SellInput struct {
	ProductID uuid.UUID
	BrandID   uuid.UUID
	SellerID  uuid.UUID
	BuyerID   *uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// Validate checks the input before any store is consulted
func (in SellInput) Validate() error {
	if in.ProductID == uuid.Nil {
		return shared.Validation("Please select a product")
	}
	if in.SellerID == uuid.Nil {
		return shared.Validation("Please select a seller")
	}
	return validateLine(in.Quantity, in.Price)
}

// NewSell creates a sell from validated input
func NewSell(tenantID uuid.UUID, in SellInput) (*Sell, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s := &Sell{TenantEntity: shared.NewTenantEntity(tenantID)}
	s.apply(in)
	return s, nil
}

// Revise replaces the editable fields of the sell
func (s *Sell) Revise(in SellInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	s.apply(in)
	s.Touch()
	return nil
}

func (s *Sell) apply(in SellInput) {
	s.ProductID = in.ProductID
	s.BrandID = in.BrandID
	s.SellerID = in.SellerID
	s.BuyerID = in.BuyerID
	s.Quantity = in.Quantity
	s.Price = in.Price
}

// Amount returns price × quantity
func (s *Sell) Amount() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

func validateLine(quantity int, price decimal.Decimal) error {
	if quantity < 1 {
		return shared.Validation("Quantity must be at least 1")
	}
	if price.IsNegative() {
		return shared.Validation("Price cannot be negative")
	}
	return nil
}
