package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenantID, category.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves categories for a tenant
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CategoryResponse, int64, error) {
	categories, total, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, total, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenantID, category.Name, category.ID); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete deletes a category that no product references
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.Conflict("Category still has products")
	}
	return s.categoryRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, tenantID uuid.UUID, name string, excludeID uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByName(ctx, tenantID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.Conflict("Category with this name already exists")
	}
	return nil
}
