package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// SellRepository defines the interface for sell persistence
type SellRepository interface {
	// FindByIDForTenant finds a sell by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sell, error)

	// FindAllForTenant lists sells newest first.
	// Recognised filter keys: "product_id", "brand_id", "seller_id", "category_id".
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sell, int64, error)

	// ExistsForProduct checks if any sell references the product
	ExistsForProduct(ctx context.Context, tenantID, productID uuid.UUID) (bool, error)

	// Save creates or updates a sell
	Save(ctx context.Context, sell *Sell) error

	// DeleteForTenant deletes a sell within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)

	// FindAllForTenant lists purchases newest first.
	// Recognised filter keys: "product_id", "brand_id", "firm_id".
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Purchase, int64, error)

	// FindByProducts returns every purchase of the given products
	FindByProducts(ctx context.Context, tenantID uuid.UUID, productIDs []uuid.UUID) ([]Purchase, error)

	ExistsForProduct(ctx context.Context, tenantID, productID uuid.UUID) (bool, error)
	Save(ctx context.Context, purchase *Purchase) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// StockRepository applies stock adjustments to products
type StockRepository interface {
	// Apply applies the adjustments in order. A withdrawal that would take
	// on-hand quantity below zero fails with an InsufficientStock error.
	Apply(ctx context.Context, tenantID uuid.UUID, adjustments []Adjustment) error
}
