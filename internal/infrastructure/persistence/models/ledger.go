package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/ledger"
)

// SellModel is the persistence model for the Sell domain entity.
type SellModel struct {
	TenantModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BrandID   uuid.UUID       `gorm:"type:uuid;index"`
	SellerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerID   *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SellModel) TableName() string {
	return "sells"
}

// ToDomain converts the persistence model to a domain Sell entity.
func (m *SellModel) ToDomain() *ledger.Sell {
	return &ledger.Sell{
		TenantEntity: m.TenantEntity(),
		ProductID:    m.ProductID,
		BrandID:      m.BrandID,
		SellerID:     m.SellerID,
		BuyerID:      m.BuyerID,
		Quantity:     m.Quantity,
		Price:        m.Price,
	}
}

// FromDomain populates the persistence model from a domain Sell entity.
// Amount is denormalised so SQL aggregates need no arithmetic.
func (m *SellModel) FromDomain(s *ledger.Sell) {
	m.FromTenantEntity(s.TenantEntity)
	m.ProductID = s.ProductID
	m.BrandID = s.BrandID
	m.SellerID = s.SellerID
	m.BuyerID = s.BuyerID
	m.Quantity = s.Quantity
	m.Price = s.Price
	m.Amount = s.Amount()
}

// PurchaseModel is the persistence model for the Purchase domain entity.
type PurchaseModel struct {
	TenantModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BrandID   uuid.UUID       `gorm:"type:uuid;index"`
	FirmID    *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy uuid.UUID       `gorm:"type:uuid;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase entity.
func (m *PurchaseModel) ToDomain() *ledger.Purchase {
	return &ledger.Purchase{
		TenantEntity: m.TenantEntity(),
		ProductID:    m.ProductID,
		BrandID:      m.BrandID,
		FirmID:       m.FirmID,
		CreatedBy:    m.CreatedBy,
		Quantity:     m.Quantity,
		Price:        m.Price,
	}
}

// FromDomain populates the persistence model from a domain Purchase entity.
func (m *PurchaseModel) FromDomain(p *ledger.Purchase) {
	m.FromTenantEntity(p.TenantEntity)
	m.ProductID = p.ProductID
	m.BrandID = p.BrandID
	m.FirmID = p.FirmID
	m.CreatedBy = p.CreatedBy
	m.Quantity = p.Quantity
	m.Price = p.Price
	m.Amount = p.Amount()
}
