package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/identity"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// SellService records sells and keeps product stock in step with them.
// Every mutation runs inside one transaction scope: the stock adjustment and
// the ledger write commit together or not at all.
type SellService struct {
	scope    TransactionScope
	sellRepo ledger.SellRepository
	userRepo identity.UserRepository
	names    nameResolver
	observer Observer
}

// NewSellService creates a new SellService
func NewSellService(
	scope TransactionScope,
	sellRepo ledger.SellRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
) *SellService {
	return &SellService{
		scope:    scope,
		sellRepo: sellRepo,
		userRepo: userRepo,
		names:    nameResolver{productRepo: productRepo, userRepo: userRepo},
		observer: noopObserver{},
	}
}

// WithObserver reports ledger activity to o
func (s *SellService) WithObserver(o Observer) *SellService {
	s.observer = o
	return s
}

// Create records a sell and withdraws the sold units from stock
func (s *SellService) Create(ctx context.Context, tenantID uuid.UUID, req SellRequest) (*SellResponse, error) {
	in, err := s.prepare(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	var sell *ledger.Sell
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, in.ProductID)
		if err != nil {
			return err
		}
		in.BrandID = product.BrandID

		sell, err = ledger.NewSell(tenantID, in)
		if err != nil {
			return err
		}
		if err := repos.StockRepo().Apply(ctx, tenantID, ledger.SellCreated(sell)); err != nil {
			return err
		}
		return repos.SellRepo().Save(ctx, sell)
	})
	if err != nil {
		observeRejection(ctx, s.observer, tenantID, err)
		return nil, err
	}
	s.observer.SellRecorded(ctx, tenantID, sell.Quantity, sell.Amount())
	return s.respond(ctx, tenantID, sell)
}

// GetByID retrieves a sell by ID
func (s *SellService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SellResponse, error) {
	sell, err := s.sellRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, tenantID, sell)
}

// List retrieves sells newest first
func (s *SellService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SellResponse, int64, error) {
	sells, total, err := s.sellRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	n, err := s.names.forSells(ctx, tenantID, sells)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SellResponse, len(sells))
	for i := range sells {
		responses[i] = ToSellResponse(&sells[i], n)
	}
	return responses, total, nil
}

// Update revises a sell. Moving it to another product returns the units to
// the old product before withdrawing them from the new one.
func (s *SellService) Update(ctx context.Context, tenantID, id uuid.UUID, req SellRequest) (*SellResponse, error) {
	in, err := s.prepare(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	var sell *ledger.Sell
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sell, err = repos.SellRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		before := *sell

		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, in.ProductID)
		if err != nil {
			return err
		}
		in.BrandID = product.BrandID

		if err := sell.Revise(in); err != nil {
			return err
		}
		if err := repos.StockRepo().Apply(ctx, tenantID, ledger.SellRevised(&before, sell)); err != nil {
			return err
		}
		return repos.SellRepo().Save(ctx, sell)
	})
	if err != nil {
		observeRejection(ctx, s.observer, tenantID, err)
		return nil, err
	}
	return s.respond(ctx, tenantID, sell)
}

// Delete removes a sell and returns its units to stock
func (s *SellService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sell, err := repos.SellRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := repos.StockRepo().Apply(ctx, tenantID, ledger.SellDeleted(sell)); err != nil {
			return err
		}
		return repos.SellRepo().DeleteForTenant(ctx, tenantID, id)
	})
}

// prepare validates the request and checks the referenced users exist.
// Nothing is read from the store while the input is invalid.
func (s *SellService) prepare(ctx context.Context, tenantID uuid.UUID, req SellRequest) (ledger.SellInput, error) {
	in, err := req.toInput()
	if err != nil {
		return in, err
	}
	if err := in.Validate(); err != nil {
		return in, err
	}
	if _, err := s.userRepo.FindByIDForTenant(ctx, tenantID, in.SellerID); err != nil {
		return in, err
	}
	if in.BuyerID != nil {
		if _, err := s.userRepo.FindByIDForTenant(ctx, tenantID, *in.BuyerID); err != nil {
			return in, err
		}
	}
	return in, nil
}

func (s *SellService) respond(ctx context.Context, tenantID uuid.UUID, sell *ledger.Sell) (*SellResponse, error) {
	n, err := s.names.forSells(ctx, tenantID, []ledger.Sell{*sell})
	if err != nil {
		return nil, err
	}
	resp := ToSellResponse(sell, n)
	return &resp, nil
}
