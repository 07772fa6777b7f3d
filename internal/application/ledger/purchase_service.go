package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/identity"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// PurchaseService records purchases and puts the bought units into stock
type PurchaseService struct {
	scope        TransactionScope
	purchaseRepo ledger.PurchaseRepository
	firmRepo     catalog.FirmRepository
	names        nameResolver
	observer     Observer
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	scope TransactionScope,
	purchaseRepo ledger.PurchaseRepository,
	productRepo catalog.ProductRepository,
	firmRepo catalog.FirmRepository,
	userRepo identity.UserRepository,
) *PurchaseService {
	return &PurchaseService{
		scope:        scope,
		purchaseRepo: purchaseRepo,
		firmRepo:     firmRepo,
		names:        nameResolver{productRepo: productRepo, userRepo: userRepo},
		observer:     noopObserver{},
	}
}

// WithObserver reports ledger activity to o
func (s *PurchaseService) WithObserver(o Observer) *PurchaseService {
	s.observer = o
	return s
}

// Create records a purchase made by userID
func (s *PurchaseService) Create(ctx context.Context, tenantID, userID uuid.UUID, req PurchaseRequest) (*PurchaseResponse, error) {
	in, err := s.prepare(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	var purchase *ledger.Purchase
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, in.ProductID)
		if err != nil {
			return err
		}
		in.BrandID = product.BrandID

		purchase, err = ledger.NewPurchase(tenantID, userID, in)
		if err != nil {
			return err
		}
		if err := repos.StockRepo().Apply(ctx, tenantID, ledger.PurchaseCreated(purchase)); err != nil {
			return err
		}
		return repos.PurchaseRepo().Save(ctx, purchase)
	})
	if err != nil {
		observeRejection(ctx, s.observer, tenantID, err)
		return nil, err
	}
	s.observer.PurchaseRecorded(ctx, tenantID, purchase.Quantity, purchase.Amount())
	return s.respond(ctx, tenantID, purchase)
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, tenantID, purchase)
}

// List retrieves purchases newest first
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseResponse, int64, error) {
	purchases, total, err := s.purchaseRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	n, err := s.names.forPurchases(ctx, tenantID, purchases)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i], n)
	}
	return responses, total, nil
}

// Update revises a purchase. Lowering the quantity takes units back out of
// stock and fails if they have already been sold.
func (s *PurchaseService) Update(ctx context.Context, tenantID, id uuid.UUID, req PurchaseRequest) (*PurchaseResponse, error) {
	in, err := s.prepare(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	var purchase *ledger.Purchase
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err = repos.PurchaseRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		before := *purchase

		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, in.ProductID)
		if err != nil {
			return err
		}
		in.BrandID = product.BrandID

		if err := purchase.Revise(in); err != nil {
			return err
		}
		if err := repos.StockRepo().Apply(ctx, tenantID, ledger.PurchaseRevised(&before, purchase)); err != nil {
			return err
		}
		return repos.PurchaseRepo().Save(ctx, purchase)
	})
	if err != nil {
		observeRejection(ctx, s.observer, tenantID, err)
		return nil, err
	}
	return s.respond(ctx, tenantID, purchase)
}

// Delete removes a purchase and takes its units back out of stock
func (s *PurchaseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := repos.StockRepo().Apply(ctx, tenantID, ledger.PurchaseDeleted(purchase)); err != nil {
			return err
		}
		return repos.PurchaseRepo().DeleteForTenant(ctx, tenantID, id)
	})
}

func (s *PurchaseService) prepare(ctx context.Context, tenantID uuid.UUID, req PurchaseRequest) (ledger.PurchaseInput, error) {
	in, err := req.toInput()
	if err != nil {
		return in, err
	}
	if err := in.Validate(); err != nil {
		return in, err
	}
	if in.FirmID != nil {
		if _, err := s.firmRepo.FindByIDForTenant(ctx, tenantID, *in.FirmID); err != nil {
			return in, err
		}
	}
	return in, nil
}

func (s *PurchaseService) respond(ctx context.Context, tenantID uuid.UUID, purchase *ledger.Purchase) (*PurchaseResponse, error) {
	n, err := s.names.forPurchases(ctx, tenantID, []ledger.Purchase{*purchase})
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase, n)
	return &resp, nil
}
