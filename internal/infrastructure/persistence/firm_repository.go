package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFirmRepository implements FirmRepository using GORM
type GormFirmRepository struct {
	db *gorm.DB
}

// NewGormFirmRepository creates a new GormFirmRepository
func NewGormFirmRepository(db *gorm.DB) *GormFirmRepository {
	return &GormFirmRepository{db: db}
}

// FindByIDForTenant finds a firm by ID within a tenant
func (r *GormFirmRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Firm, error) {
	var model models.FirmModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, notFoundAs(err, "Firm")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists firms of a tenant; search matches name and phone
func (r *GormFirmRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Firm, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FirmModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	query, total, err := paginate(query, filter, FirmSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.FirmModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	firms := make([]catalog.Firm, len(rows))
	for i := range rows {
		firms[i] = *rows[i].ToDomain()
	}
	return firms, total, nil
}

// Save creates or updates a firm
func (r *GormFirmRepository) Save(ctx context.Context, firm *catalog.Firm) error {
	var model models.FirmModel
	model.FromDomain(firm)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant deletes a firm within a tenant
func (r *GormFirmRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.FirmModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Firm")
	}
	return nil
}

// HasPurchases checks if any purchase references the firm
func (r *GormFirmRepository) HasPurchases(ctx context.Context, tenantID, firmID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("tenant_id = ? AND firm_id = ?", tenantID, firmID))
}

var _ catalog.FirmRepository = (*GormFirmRepository)(nil)
