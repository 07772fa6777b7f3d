package ledger

import (
	"context"

	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/ledger"
)

// TransactionScope runs a ledger mutation atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories within
// a transaction. All repositories returned share the same underlying transaction,
// so reads made through them observe the writes made earlier in the scope.
type TransactionalRepositories interface {
	SellRepo() ledger.SellRepository
	PurchaseRepo() ledger.PurchaseRepository
	StockRepo() ledger.StockRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing with mocked repositories.
type NoOpTransactionScope struct {
	sellRepo     ledger.SellRepository
	purchaseRepo ledger.PurchaseRepository
	stockRepo    ledger.StockRepository
	productRepo  catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	sellRepo ledger.SellRepository,
	purchaseRepo ledger.PurchaseRepository,
	stockRepo ledger.StockRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		sellRepo:     sellRepo,
		purchaseRepo: purchaseRepo,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SellRepo returns the sell repository.
func (s *NoOpTransactionScope) SellRepo() ledger.SellRepository { return s.sellRepo }

// PurchaseRepo returns the purchase repository.
func (s *NoOpTransactionScope) PurchaseRepo() ledger.PurchaseRepository { return s.purchaseRepo }

// StockRepo returns the stock repository.
func (s *NoOpTransactionScope) StockRepo() ledger.StockRepository { return s.stockRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
