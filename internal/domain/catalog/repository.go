package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByIDForTenant finds a category by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)

	// FindAllForTenant finds categories for a tenant, returning the page and the total count
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, int64, error)

	// ExistsByName checks if a category with the given name exists in the tenant
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// DeleteForTenant deletes a category within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Brand, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Brand, int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, brand *Brand) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// FirmRepository defines the interface for firm persistence
type FirmRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Firm, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Firm, int64, error)
	Save(ctx context.Context, firm *Firm) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	// HasPurchases checks if any purchase references the firm
	HasPurchases(ctx context.Context, tenantID, firmID uuid.UUID) (bool, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindAllForTenant finds products for a tenant.
	// Recognised filter keys: "category_id", "brand_id".
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, int64, error)

	// FindByCategory returns every product of a category in creation order
	FindByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) ([]Product, error)

	// Save creates or updates a product.
	// Stock counters are only written on create; afterwards the ledger owns them.
	Save(ctx context.Context, product *Product) error

	// DeleteForTenant deletes a product within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountByCategory counts products referencing a category
	CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error)

	// CountByBrand counts products referencing a brand
	CountByBrand(ctx context.Context, tenantID, brandID uuid.UUID) (int64, error)

	// FindByIDs returns the products among ids that exist, in no particular order
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
}
