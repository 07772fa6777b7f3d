package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/identity"
	"github.com/stockroom/backoffice/internal/domain/ledger"
)

// names holds display names for the products and users a page of ledger rows references
type names struct {
	products map[uuid.UUID]string
	users    map[uuid.UUID]string
}

func (n names) product(id uuid.UUID) ledger.Ref {
	ref := ledger.RefTo(id)
	ref.Name = n.products[id]
	return ref
}

func (n names) user(id uuid.UUID) ledger.Ref {
	ref := ledger.RefTo(id)
	ref.Name = n.users[id]
	return ref
}

// nameResolver loads names in two batched queries per page
type nameResolver struct {
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
}

func (r nameResolver) resolve(ctx context.Context, tenantID uuid.UUID, productIDs, userIDs []uuid.UUID) (names, error) {
	n := names{
		products: make(map[uuid.UUID]string),
		users:    make(map[uuid.UUID]string),
	}

	products, err := r.productRepo.FindByIDs(ctx, tenantID, distinct(productIDs))
	if err != nil {
		return n, err
	}
	for i := range products {
		n.products[products[i].ID] = products[i].Name
	}

	users, err := r.userRepo.FindByIDs(ctx, tenantID, distinct(userIDs))
	if err != nil {
		return n, err
	}
	for i := range users {
		n.users[users[i].ID] = users[i].DisplayName()
	}
	return n, nil
}

func (r nameResolver) forSells(ctx context.Context, tenantID uuid.UUID, sells []ledger.Sell) (names, error) {
	productIDs := make([]uuid.UUID, 0, len(sells))
	userIDs := make([]uuid.UUID, 0, len(sells))
	for i := range sells {
		productIDs = append(productIDs, sells[i].ProductID)
		userIDs = append(userIDs, sells[i].SellerID)
		if sells[i].BuyerID != nil {
			userIDs = append(userIDs, *sells[i].BuyerID)
		}
	}
	return r.resolve(ctx, tenantID, productIDs, userIDs)
}

func (r nameResolver) forPurchases(ctx context.Context, tenantID uuid.UUID, purchases []ledger.Purchase) (names, error) {
	productIDs := make([]uuid.UUID, 0, len(purchases))
	userIDs := make([]uuid.UUID, 0, len(purchases))
	for i := range purchases {
		productIDs = append(productIDs, purchases[i].ProductID)
		userIDs = append(userIDs, purchases[i].CreatedBy)
	}
	return r.resolve(ctx, tenantID, productIDs, userIDs)
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
