package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/report"
	"github.com/stockroom/backoffice/internal/infrastructure/telemetry"
)

// SummaryService assembles category summaries from catalog and ledger queries
type SummaryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	summaryRepo  report.SummaryRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	summaryRepo report.SummaryRepository,
) *SummaryService {
	return &SummaryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		summaryRepo:  summaryRepo,
	}
}

// CategorySummary computes the summary of one category.
// A missing category yields a "Category not found" error.
func (s *SummaryService) CategorySummary(ctx context.Context, tenantID, categoryID uuid.UUID) (*CategorySummaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "category_summary",
		telemetry.SpanAttrCategoryID, categoryID.String())
	defer span.End()

	resp, err := s.categorySummary(ctx, tenantID, categoryID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return resp, nil
}

func (s *SummaryService) categorySummary(ctx context.Context, tenantID, categoryID uuid.UUID) (*CategorySummaryResponse, error) {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, categoryID); err != nil {
		return nil, err
	}

	summary := report.NewCategorySummary(categoryID)

	products, err := s.productRepo.FindByCategory(ctx, tenantID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("load category products: %w", err)
	}
	summary.ProductCount = int64(len(products))
	summary.MostPurchased = report.MostPurchased(products)
	summary.MostSold = report.MostSold(products)

	if len(products) > 0 {
		if summary.TopBuyers, err = s.summaryRepo.TopBuyers(ctx, tenantID, categoryID, report.TopPartyLimit); err != nil {
			return nil, fmt.Errorf("rank buyers: %w", err)
		}
		if summary.TopSellers, err = s.summaryRepo.TopSellers(ctx, tenantID, categoryID, report.TopPartyLimit); err != nil {
			return nil, fmt.Errorf("rank sellers: %w", err)
		}
		if summary.Totals, err = s.summaryRepo.Totals(ctx, tenantID, categoryID); err != nil {
			return nil, fmt.Errorf("sum ledger: %w", err)
		}
	}

	resp := ToCategorySummaryResponse(summary)
	return &resp, nil
}
