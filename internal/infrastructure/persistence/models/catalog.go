package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/catalog"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	TenantModel
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{TenantEntity: m.TenantEntity(), Name: m.Name}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromTenantEntity(c.TenantEntity)
	m.Name = c.Name
}

// BrandModel is the persistence model for the Brand domain entity.
type BrandModel struct {
	TenantModel
	Name  string `gorm:"type:varchar(100);not null"`
	Image string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the persistence model to a domain Brand entity.
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{TenantEntity: m.TenantEntity(), Name: m.Name, Image: m.Image}
}

// FromDomain populates the persistence model from a domain Brand entity.
func (m *BrandModel) FromDomain(b *catalog.Brand) {
	m.FromTenantEntity(b.TenantEntity)
	m.Name = b.Name
	m.Image = b.Image
}

// FirmModel is the persistence model for the Firm domain entity.
type FirmModel struct {
	TenantModel
	Name    string `gorm:"type:varchar(150);not null"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:varchar(300)"`
	Image   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (FirmModel) TableName() string {
	return "firms"
}

// ToDomain converts the persistence model to a domain Firm entity.
func (m *FirmModel) ToDomain() *catalog.Firm {
	return &catalog.Firm{
		TenantEntity: m.TenantEntity(),
		Name:         m.Name,
		Phone:        m.Phone,
		Address:      m.Address,
		Image:        m.Image,
	}
}

// FromDomain populates the persistence model from a domain Firm entity.
func (m *FirmModel) FromDomain(f *catalog.Firm) {
	m.FromTenantEntity(f.TenantEntity)
	m.Name = f.Name
	m.Phone = f.Phone
	m.Address = f.Address
	m.Image = f.Image
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	TenantModel
	Name          string          `gorm:"type:varchar(200);not null"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BrandID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Image         string          `gorm:"type:varchar(500)"`
	Quantity      int             `gorm:"not null;default:0"`
	PurchaseCount int             `gorm:"not null;default:0"`
	SoldCount     int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantEntity:  m.TenantEntity(),
		Name:          m.Name,
		CategoryID:    m.CategoryID,
		BrandID:       m.BrandID,
		Price:         m.Price,
		Image:         m.Image,
		Quantity:      m.Quantity,
		PurchaseCount: m.PurchaseCount,
		SoldCount:     m.SoldCount,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromTenantEntity(p.TenantEntity)
	m.Name = p.Name
	m.CategoryID = p.CategoryID
	m.BrandID = p.BrandID
	m.Price = p.Price
	m.Image = p.Image
	m.Quantity = p.Quantity
	m.PurchaseCount = p.PurchaseCount
	m.SoldCount = p.SoldCount
}
