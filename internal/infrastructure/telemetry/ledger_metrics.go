package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// LedgerMetrics counts sells, purchases and rejected withdrawals per tenant.
// It satisfies the ledger services' Observer interface.
type LedgerMetrics struct {
	entries  *Counter
	units    *Counter
	amount   *Histogram
	rejected *Counter
}

// NewLedgerMetrics creates the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	entries, err := NewCounter(meter, "ledger_entries_total", "Sells and purchases recorded", "{entry}")
	if err != nil {
		return nil, err
	}
	units, err := NewCounter(meter, "ledger_units_total", "Units moved by sells and purchases", "{unit}")
	if err != nil {
		return nil, err
	}
	amount, err := NewHistogram(meter, HistogramOpts{
		Name:        "ledger_entry_amount",
		Description: "Amount of each recorded sell or purchase",
		Boundaries:  []float64{10, 50, 100, 500, 1000, 5000, 10000},
	})
	if err != nil {
		return nil, err
	}
	rejected, err := NewCounter(meter, "ledger_stock_rejections_total", "Mutations refused for insufficient stock", "{entry}")
	if err != nil {
		return nil, err
	}
	return &LedgerMetrics{entries: entries, units: units, amount: amount, rejected: rejected}, nil
}

// SellRecorded records a committed sell
func (m *LedgerMetrics) SellRecorded(ctx context.Context, tenantID uuid.UUID, quantity int, amount decimal.Decimal) {
	m.record(ctx, "sell", tenantID, quantity, amount)
}

// PurchaseRecorded records a committed purchase
func (m *LedgerMetrics) PurchaseRecorded(ctx context.Context, tenantID uuid.UUID, quantity int, amount decimal.Decimal) {
	m.record(ctx, "purchase", tenantID, quantity, amount)
}

// StockRejected records a refused stock withdrawal
func (m *LedgerMetrics) StockRejected(ctx context.Context, tenantID uuid.UUID) {
	m.rejected.Inc(ctx, AttrTenantID.String(tenantID.String()))
}

func (m *LedgerMetrics) record(ctx context.Context, kind string, tenantID uuid.UUID, quantity int, amount decimal.Decimal) {
	tenant := AttrTenantID.String(tenantID.String())
	k := AttrLedgerKind.String(kind)
	m.entries.Inc(ctx, tenant, k)
	m.units.Add(ctx, int64(quantity), tenant, k)
	m.amount.Record(ctx, amount.InexactFloat64(), k)
}
