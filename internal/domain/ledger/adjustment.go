package ledger

import "github.com/google/uuid"

// Adjustment is a change to the stock counters of one product.
// A negative Quantity must never take the on-hand quantity below zero;
// stores apply it as a guarded update and report InsufficientStock otherwise.
type Adjustment struct {
	ProductID uuid.UUID
	Quantity  int
	Sold      int
	Purchased int
}

// IsZero reports whether the adjustment changes nothing
func (a Adjustment) IsZero() bool {
	return a.Quantity == 0 && a.Sold == 0 && a.Purchased == 0
}

// Withdraws reports whether the adjustment takes units out of stock
func (a Adjustment) Withdraws() bool {
	return a.Quantity < 0
}

// SellCreated takes the sold units out of stock
func SellCreated(s *Sell) []Adjustment {
	return []Adjustment{{ProductID: s.ProductID, Quantity: -s.Quantity, Sold: s.Quantity}}
}

// SellDeleted puts the sold units back into stock
func SellDeleted(s *Sell) []Adjustment {
	return []Adjustment{{ProductID: s.ProductID, Quantity: s.Quantity, Sold: -s.Quantity}}
}

// SellRevised reconciles an edit. When the product changes the old line is
// reverted in full before the new one is applied; restocks come first so a
// failing withdrawal never leaves a half-applied edit behind.
func SellRevised(before, after *Sell) []Adjustment {
	if before.ProductID == after.ProductID {
		delta := after.Quantity - before.Quantity
		return compact([]Adjustment{{ProductID: after.ProductID, Quantity: -delta, Sold: delta}})
	}
	return append(SellDeleted(before), SellCreated(after)...)
}

// PurchaseCreated puts the purchased units into stock
func PurchaseCreated(p *Purchase) []Adjustment {
	return []Adjustment{{ProductID: p.ProductID, Quantity: p.Quantity, Purchased: p.Quantity}}
}

// PurchaseDeleted takes the purchased units back out of stock
func PurchaseDeleted(p *Purchase) []Adjustment {
	return []Adjustment{{ProductID: p.ProductID, Quantity: -p.Quantity, Purchased: -p.Quantity}}
}

// PurchaseRevised reconciles an edit of a purchase
func PurchaseRevised(before, after *Purchase) []Adjustment {
	if before.ProductID == after.ProductID {
		delta := after.Quantity - before.Quantity
		return compact([]Adjustment{{ProductID: after.ProductID, Quantity: delta, Purchased: delta}})
	}
	return append(PurchaseCreated(after), PurchaseDeleted(before)...)
}

func compact(adjs []Adjustment) []Adjustment {
	out := adjs[:0]
	for _, a := range adjs {
		if !a.IsZero() {
			out = append(out, a)
		}
	}
	return out
}
