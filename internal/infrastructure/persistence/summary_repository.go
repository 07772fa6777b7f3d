package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/report"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSummaryRepository runs the ledger aggregations of a category summary
type GormSummaryRepository struct {
	db *gorm.DB
}

// NewGormSummaryRepository creates a new GormSummaryRepository
func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

type partyRow struct {
	ID    uuid.UUID
	Total int64
}

// TopBuyers groups the category's sells by buyer, skipping anonymous sells
func (r *GormSummaryRepository) TopBuyers(ctx context.Context, tenantID, categoryID uuid.UUID, limit int) ([]report.PartyTotal, error) {
	return r.topParties(ctx, tenantID, categoryID, "buyer_id", limit)
}

// TopSellers groups the category's sells by seller
func (r *GormSummaryRepository) TopSellers(ctx context.Context, tenantID, categoryID uuid.UUID, limit int) ([]report.PartyTotal, error) {
	return r.topParties(ctx, tenantID, categoryID, "seller_id", limit)
}

// column is one of the two fixed party columns above, never caller input
func (r *GormSummaryRepository) topParties(ctx context.Context, tenantID, categoryID uuid.UUID, column string, limit int) ([]report.PartyTotal, error) {
	db := r.db.WithContext(ctx)
	var rows []partyRow
	err := db.Model(&models.SellModel{}).
		Select(column+" AS id, SUM(quantity) AS total").
		Where("tenant_id = ? AND "+column+" IS NOT NULL", tenantID).
		Where("product_id IN (?)", productsInCategory(db, tenantID, categoryID)).
		Group(column).
		Order("total DESC, id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]report.PartyTotal, len(rows))
	for i, row := range rows {
		totals[i] = report.PartyTotal{ID: row.ID, Quantity: row.Total}
	}
	return totals, nil
}

// Totals sums purchase amounts (spent) and sell amounts (gained) of the category
func (r *GormSummaryRepository) Totals(ctx context.Context, tenantID, categoryID uuid.UUID) (report.LedgerTotals, error) {
	db := r.db.WithContext(ctx)
	spent, err := sumAmount(db, &models.PurchaseModel{}, tenantID, categoryID)
	if err != nil {
		return report.LedgerTotals{}, err
	}
	gained, err := sumAmount(db, &models.SellModel{}, tenantID, categoryID)
	if err != nil {
		return report.LedgerTotals{}, err
	}
	return report.LedgerTotals{Spent: spent, Gained: gained}, nil
}

func sumAmount(db *gorm.DB, model any, tenantID, categoryID uuid.UUID) (decimal.Decimal, error) {
	var sum struct {
		Total decimal.NullDecimal
	}
	err := db.Model(model).
		Select("SUM(amount) AS total").
		Where("tenant_id = ?", tenantID).
		Where("product_id IN (?)", productsInCategory(db, tenantID, categoryID)).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Total.Valid {
		return decimal.Zero, nil
	}
	return sum.Total.Decimal, nil
}

var _ report.SummaryRepository = (*GormSummaryRepository)(nil)
