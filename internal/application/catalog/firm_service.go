package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// FirmService handles supplier firms
type FirmService struct {
	firmRepo catalog.FirmRepository
}

// NewFirmService creates a new FirmService
func NewFirmService(firmRepo catalog.FirmRepository) *FirmService {
	return &FirmService{firmRepo: firmRepo}
}

// Create creates a new firm
func (s *FirmService) Create(ctx context.Context, tenantID uuid.UUID, req FirmRequest) (*FirmResponse, error) {
	firm, err := catalog.NewFirm(tenantID, req.Name, req.Phone, req.Address, req.Image)
	if err != nil {
		return nil, err
	}
	if err := s.firmRepo.Save(ctx, firm); err != nil {
		return nil, err
	}
	resp := ToFirmResponse(firm)
	return &resp, nil
}

// GetByID retrieves a firm by ID
func (s *FirmService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*FirmResponse, error) {
	firm, err := s.firmRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToFirmResponse(firm)
	return &resp, nil
}

// List retrieves firms for a tenant
func (s *FirmService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FirmResponse, int64, error) {
	firms, total, err := s.firmRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]FirmResponse, len(firms))
	for i := range firms {
		responses[i] = ToFirmResponse(&firms[i])
	}
	return responses, total, nil
}

// Update changes a firm's contact details
func (s *FirmService) Update(ctx context.Context, tenantID, id uuid.UUID, req FirmRequest) (*FirmResponse, error) {
	firm, err := s.firmRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := firm.Update(req.Name, req.Phone, req.Address, req.Image); err != nil {
		return nil, err
	}
	if err := s.firmRepo.Save(ctx, firm); err != nil {
		return nil, err
	}
	resp := ToFirmResponse(firm)
	return &resp, nil
}

// Delete deletes a firm no purchase was bought from
func (s *FirmService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	used, err := s.firmRepo.HasPurchases(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if used {
		return shared.Conflict("Firm has purchases")
	}
	return s.firmRepo.DeleteForTenant(ctx, tenantID, id)
}
