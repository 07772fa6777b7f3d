package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// Observer is told about committed ledger writes and rejected stock withdrawals
type Observer interface {
	SellRecorded(ctx context.Context, tenantID uuid.UUID, quantity int, amount decimal.Decimal)
	PurchaseRecorded(ctx context.Context, tenantID uuid.UUID, quantity int, amount decimal.Decimal)
	StockRejected(ctx context.Context, tenantID uuid.UUID)
}

type noopObserver struct{}

func (noopObserver) SellRecorded(context.Context, uuid.UUID, int, decimal.Decimal)     {}
func (noopObserver) PurchaseRecorded(context.Context, uuid.UUID, int, decimal.Decimal) {}
func (noopObserver) StockRejected(context.Context, uuid.UUID)                          {}

// observeRejection reports err to o when it is a stock shortfall
func observeRejection(ctx context.Context, o Observer, tenantID uuid.UUID, err error) {
	if errors.Is(err, shared.ErrInsufficientStock) {
		o.StockRejected(ctx, tenantID)
	}
}
