package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	sellRepo     ledger.SellRepository
	purchaseRepo ledger.PurchaseRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	sellRepo ledger.SellRepository,
	purchaseRepo ledger.PurchaseRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		sellRepo:     sellRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Create creates a new product with empty stock
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	categoryID, brandID, err := s.resolveRefs(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, req.Name, categoryID, brandID, req.Price)
	if err != nil {
		return nil, err
	}
	if req.Image != "" {
		product.SetImage(req.Image)
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products for a tenant
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update changes the descriptive attributes of a product
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	categoryID, brandID, err := s.resolveRefs(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, categoryID, brandID, req.Price); err != nil {
		return nil, err
	}
	product.SetImage(req.Image)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete deletes a product that has never been bought or sold
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if product.HasLedgerActivity() {
		return shared.Conflict("Product has sells or purchases")
	}

	sold, err := s.sellRepo.ExistsForProduct(ctx, tenantID, id)
	if err != nil {
		return err
	}
	bought, err := s.purchaseRepo.ExistsForProduct(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if sold || bought {
		return shared.Conflict("Product has sells or purchases")
	}
	return s.productRepo.DeleteForTenant(ctx, tenantID, id)
}

// resolveRefs parses and checks the category and brand named by the request
func (s *ProductService) resolveRefs(ctx context.Context, tenantID uuid.UUID, req ProductRequest) (uuid.UUID, uuid.UUID, error) {
	categoryID, err := parseID("category id", req.CategoryID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	brandID, err := parseID("brand id", req.BrandID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if categoryID != uuid.Nil {
		if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, categoryID); err != nil {
			return uuid.Nil, uuid.Nil, err
		}
	}
	if brandID != uuid.Nil {
		if _, err := s.brandRepo.FindByIDForTenant(ctx, tenantID, brandID); err != nil {
			return uuid.Nil, uuid.Nil, err
		}
	}
	return categoryID, brandID, nil
}
