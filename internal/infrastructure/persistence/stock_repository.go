package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockRepository moves product stock counters with guarded updates
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Apply applies each adjustment as a single UPDATE. Withdrawals carry a
// "quantity >= n" guard so concurrent mutations can never drive stock
// negative; a guarded update touching no row is reported as InsufficientStock.
// Callers run Apply inside a transaction so a failure rolls back earlier steps.
func (r *GormStockRepository) Apply(ctx context.Context, tenantID uuid.UUID, adjustments []ledger.Adjustment) error {
	for _, adj := range adjustments {
		if adj.IsZero() {
			continue
		}
		query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
			Where("tenant_id = ? AND id = ?", tenantID, adj.ProductID)
		if adj.Withdraws() {
			query = query.Where("quantity >= ?", -adj.Quantity)
		}

		result := query.Updates(map[string]any{
			"quantity":       gorm.Expr("quantity + ?", adj.Quantity),
			"sold_count":     gorm.Expr("sold_count + ?", adj.Sold),
			"purchase_count": gorm.Expr("purchase_count + ?", adj.Purchased),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.explain(ctx, tenantID, adj)
		}
	}
	return nil
}

// explain loads the product to tell a missing product from a short one
func (r *GormStockRepository) explain(ctx context.Context, tenantID uuid.UUID, adj ledger.Adjustment) error {
	var model models.ProductModel
	err := r.db.WithContext(ctx).
		Select("id", "name", "quantity").
		Where("tenant_id = ? AND id = ?", tenantID, adj.ProductID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NotFound("Product")
	}
	if err != nil {
		return err
	}
	return shared.InsufficientStock(model.Name, model.Quantity, -adj.Quantity)
}

var _ ledger.StockRepository = (*GormStockRepository)(nil)
