package report

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/identity"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/report"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/telemetry"
)

// RollupService computes filtered sell rollups on the server, the same
// figures the client derives from the bulk collections.
type RollupService struct {
	sellRepo     ledger.SellRepository
	purchaseRepo ledger.PurchaseRepository
	productRepo  catalog.ProductRepository
	userRepo     identity.UserRepository
}

// NewRollupService creates a new RollupService
func NewRollupService(
	sellRepo ledger.SellRepository,
	purchaseRepo ledger.PurchaseRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
) *RollupService {
	return &RollupService{
		sellRepo:     sellRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

// Rollup rolls up the sells matching f. Only the purchases and products the
// matching sells reference are loaded.
func (s *RollupService) Rollup(ctx context.Context, tenantID uuid.UUID, f report.SellFilter) (*RollupResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "rollup",
		telemetry.SpanAttrCategoryID, f.CategoryID,
		telemetry.SpanAttrBrandID, f.BrandID,
		telemetry.SpanAttrProductID, f.ProductID,
		telemetry.SpanAttrSellerID, f.SellerID,
	)
	defer span.End()

	resp, err := s.rollup(ctx, tenantID, f)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return resp, nil
}

func (s *RollupService) rollup(ctx context.Context, tenantID uuid.UUID, f report.SellFilter) (*RollupResponse, error) {
	filter, err := sellQuery(f)
	if err != nil {
		return nil, err
	}
	sells, _, err := s.sellRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0)
	sellerIDs := make([]uuid.UUID, 0)
	seenProduct := make(map[uuid.UUID]bool)
	seenSeller := make(map[uuid.UUID]bool)
	for i := range sells {
		if !seenProduct[sells[i].ProductID] {
			seenProduct[sells[i].ProductID] = true
			productIDs = append(productIDs, sells[i].ProductID)
		}
		if !seenSeller[sells[i].SellerID] {
			seenSeller[sells[i].SellerID] = true
			sellerIDs = append(sellerIDs, sells[i].SellerID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, tenantID, productIDs)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindByProducts(ctx, tenantID, productIDs)
	if err != nil {
		return nil, err
	}
	sellers, err := s.userRepo.FindByIDs(ctx, tenantID, sellerIDs)
	if err != nil {
		return nil, err
	}

	lines := SellLines(sells, sellers)
	rollup := report.RollupSells(lines, PurchaseLines(purchases), report.NewCatalog(ProductSnapshots(products)))
	resp := ToRollupResponse(rollup)
	return &resp, nil
}

// sellQuery turns a rollup filter into a whole-collection repository filter
// in creation order, so seller ties keep their first appearance.
func sellQuery(f report.SellFilter) (shared.Filter, error) {
	filter := shared.Filter{
		PageSize: 0,
		OrderBy:  "created_at",
		OrderDir: "asc",
		Filters:  make(map[string]any),
	}
	for key, raw := range map[string]string{
		"category_id": f.CategoryID,
		"brand_id":    f.BrandID,
		"product_id":  f.ProductID,
		"seller_id":   f.SellerID,
	} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, shared.Validation("Invalid %s", strings.ReplaceAll(key, "_", " "))
		}
		filter.Filters[key] = id
	}
	return filter, nil
}

// SellLines converts ledger sells into engine lines, naming sellers from users
func SellLines(sells []ledger.Sell, sellers []identity.User) []report.SellLine {
	names := make(map[uuid.UUID]string, len(sellers))
	for i := range sellers {
		names[sellers[i].ID] = sellers[i].DisplayName()
	}
	lines := make([]report.SellLine, len(sells))
	for i := range sells {
		seller := ledger.RefTo(sells[i].SellerID)
		seller.Name = names[sells[i].SellerID]
		lines[i] = report.SellLine{
			ID:       sells[i].ID.String(),
			Product:  ledger.RefTo(sells[i].ProductID),
			Brand:    ledger.RefTo(sells[i].BrandID),
			Seller:   seller,
			Quantity: sells[i].Quantity,
			Price:    sells[i].Price,
		}
	}
	return lines
}

// PurchaseLines converts ledger purchases into engine lines
func PurchaseLines(purchases []ledger.Purchase) []report.PurchaseLine {
	lines := make([]report.PurchaseLine, len(purchases))
	for i := range purchases {
		lines[i] = report.PurchaseLine{
			ID:       purchases[i].ID.String(),
			Product:  ledger.RefTo(purchases[i].ProductID),
			Quantity: purchases[i].Quantity,
			Price:    purchases[i].Price,
		}
	}
	return lines
}

// ProductSnapshots converts catalog products into engine snapshots
func ProductSnapshots(products []catalog.Product) []report.ProductSnapshot {
	snapshots := make([]report.ProductSnapshot, len(products))
	for i := range products {
		snapshots[i] = report.ProductSnapshot{
			ID:       products[i].ID.String(),
			Name:     products[i].Name,
			Category: ledger.RefTo(products[i].CategoryID),
			Brand:    ledger.RefTo(products[i].BrandID),
			Price:    products[i].Price,
		}
	}
	return snapshots
}
