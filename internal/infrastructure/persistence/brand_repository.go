package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByIDForTenant finds a brand by ID within a tenant
func (r *GormBrandRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, notFoundAs(err, "Brand")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists brands of a tenant
func (r *GormBrandRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Brand, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BrandModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}

	query, total, err := paginate(query, filter, NamedSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.BrandModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	brands := make([]catalog.Brand, len(rows))
	for i := range rows {
		brands[i] = *rows[i].ToDomain()
	}
	return brands, total, nil
}

// ExistsByName checks for a brand with the same name, ignoring case
func (r *GormBrandRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.BrandModel{}).
		Where("tenant_id = ? AND LOWER(name) = ?", tenantID, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query)
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	var model models.BrandModel
	model.FromDomain(brand)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant deletes a brand within a tenant
func (r *GormBrandRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.BrandModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Brand")
	}
	return nil
}

var _ catalog.BrandRepository = (*GormBrandRepository)(nil)
