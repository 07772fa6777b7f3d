package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByIDForTenant finds a purchase by ID within a tenant
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, notFoundAs(err, "Purchase")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists purchases newest first
func (r *GormPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).Where("tenant_id = ?", tenantID)
	if id, ok := filterUUID(filter, "product_id"); ok {
		query = query.Where("product_id = ?", id)
	}
	if id, ok := filterUUID(filter, "brand_id"); ok {
		query = query.Where("brand_id = ?", id)
	}
	if id, ok := filterUUID(filter, "firm_id"); ok {
		query = query.Where("firm_id = ?", id)
	}

	query, total, err := paginate(query, filter, LedgerSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.PurchaseModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toPurchases(rows), total, nil
}

// FindByProducts returns every purchase of the given products, oldest first
func (r *GormPurchaseRepository) FindByProducts(ctx context.Context, tenantID uuid.UUID, productIDs []uuid.UUID) ([]ledger.Purchase, error) {
	if len(productIDs) == 0 {
		return []ledger.Purchase{}, nil
	}
	var rows []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id IN ?", tenantID, productIDs).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPurchases(rows), nil
}

// ExistsForProduct checks if any purchase references the product
func (r *GormPurchaseRepository) ExistsForProduct(ctx context.Context, tenantID, productID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID))
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *ledger.Purchase) error {
	var model models.PurchaseModel
	model.FromDomain(purchase)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant deletes a purchase within a tenant
func (r *GormPurchaseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.PurchaseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Purchase")
	}
	return nil
}

func toPurchases(rows []models.PurchaseModel) []ledger.Purchase {
	purchases := make([]ledger.Purchase, len(rows))
	for i := range rows {
		purchases[i] = *rows[i].ToDomain()
	}
	return purchases
}

var _ ledger.PurchaseRepository = (*GormPurchaseRepository)(nil)
