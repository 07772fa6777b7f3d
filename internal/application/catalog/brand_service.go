package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// BrandService handles brand-related business operations
type BrandService struct {
	brandRepo   catalog.BrandRepository
	productRepo catalog.ProductRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository, productRepo catalog.ProductRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo, productRepo: productRepo}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, tenantID uuid.UUID, req BrandRequest) (*BrandResponse, error) {
	brand, err := catalog.NewBrand(tenantID, req.Name, req.Image)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenantID, brand.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	resp := ToBrandResponse(brand)
	return &resp, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// List retrieves brands for a tenant
func (s *BrandService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BrandResponse, int64, error) {
	brands, total, err := s.brandRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		responses[i] = ToBrandResponse(&brands[i])
	}
	return responses, total, nil
}

// Update changes a brand's name and image
func (s *BrandService) Update(ctx context.Context, tenantID, id uuid.UUID, req BrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := brand.Update(req.Name, req.Image); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenantID, brand.Name, brand.ID); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	resp := ToBrandResponse(brand)
	return &resp, nil
}

// Delete deletes a brand that no product references
func (s *BrandService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByBrand(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.Conflict("Brand still has products")
	}
	return s.brandRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *BrandService) ensureUniqueName(ctx context.Context, tenantID uuid.UUID, name string, excludeID uuid.UUID) error {
	exists, err := s.brandRepo.ExistsByName(ctx, tenantID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.Conflict("Brand with this name already exists")
	}
	return nil
}
