// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of GORM tags; each model converts with ToDomain
// and FromDomain, and repositories only ever hand domain types to callers.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// TenantModel provides the persistence fields shared by every tenant-scoped table
type TenantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// FromTenantEntity populates the model from a domain TenantEntity
func (m *TenantModel) FromTenantEntity(e shared.TenantEntity) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// TenantEntity converts the model back to a domain TenantEntity
func (m *TenantModel) TenantEntity() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID: m.TenantID,
	}
}

// All returns every model in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&BrandModel{},
		&FirmModel{},
		&ProductModel{},
		&PurchaseModel{},
		&SellModel{},
	}
}
