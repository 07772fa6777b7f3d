package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSellRepository implements SellRepository using GORM
type GormSellRepository struct {
	db *gorm.DB
}

// NewGormSellRepository creates a new GormSellRepository
func NewGormSellRepository(db *gorm.DB) *GormSellRepository {
	return &GormSellRepository{db: db}
}

// FindByIDForTenant finds a sell by ID within a tenant
func (r *GormSellRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Sell, error) {
	var model models.SellModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, notFoundAs(err, "Sell")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists sells newest first
func (r *GormSellRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.Sell, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SellModel{}).Where("tenant_id = ?", tenantID)
	if id, ok := filterUUID(filter, "product_id"); ok {
		query = query.Where("product_id = ?", id)
	}
	if id, ok := filterUUID(filter, "brand_id"); ok {
		query = query.Where("brand_id = ?", id)
	}
	if id, ok := filterUUID(filter, "seller_id"); ok {
		query = query.Where("seller_id = ?", id)
	}
	if id, ok := filterUUID(filter, "category_id"); ok {
		query = query.Where("product_id IN (?)", productsInCategory(r.db.WithContext(ctx), tenantID, id))
	}

	query, total, err := paginate(query, filter, LedgerSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.SellModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	sells := make([]ledger.Sell, len(rows))
	for i := range rows {
		sells[i] = *rows[i].ToDomain()
	}
	return sells, total, nil
}

// ExistsForProduct checks if any sell references the product
func (r *GormSellRepository) ExistsForProduct(ctx context.Context, tenantID, productID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.SellModel{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID))
}

// Save creates or updates a sell
func (r *GormSellRepository) Save(ctx context.Context, sell *ledger.Sell) error {
	var model models.SellModel
	model.FromDomain(sell)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant deletes a sell within a tenant
func (r *GormSellRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.SellModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Sell")
	}
	return nil
}

func productsInCategory(db *gorm.DB, tenantID, categoryID uuid.UUID) *gorm.DB {
	return db.Model(&models.ProductModel{}).Select("id").
		Where("tenant_id = ? AND category_id = ?", tenantID, categoryID)
}

var _ ledger.SellRepository = (*GormSellRepository)(nil)
