package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/ledger"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// SellRequest is the payload for creating or updating a sell.
// References accept either a bare id or an embedded {"_id": ...} object.
type SellRequest struct {
	Product  ledger.Ref      `json:"productId"`
	Seller   ledger.Ref      `json:"sellerId"`
	Buyer    ledger.Ref      `json:"buyerId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (r SellRequest) toInput() (ledger.SellInput, error) {
	productID, err := refID("product", r.Product)
	if err != nil {
		return ledger.SellInput{}, err
	}
	sellerID, err := refID("seller", r.Seller)
	if err != nil {
		return ledger.SellInput{}, err
	}
	buyerID, err := refID("buyer", r.Buyer)
	if err != nil {
		return ledger.SellInput{}, err
	}
	in := ledger.SellInput{
		ProductID: productID,
		SellerID:  sellerID,
		Quantity:  r.Quantity,
		Price:     r.Price,
	}
	if buyerID != uuid.Nil {
		in.BuyerID = &buyerID
	}
	return in, nil
}

// SellResponse represents a sell in API responses.
// Product and seller are populated with their display names.
type SellResponse struct {
	ID        uuid.UUID  `json:"_id"`
	Product   ledger.Ref `json:"productId"`
	Brand     ledger.Ref `json:"brandId"`
	Seller    ledger.Ref `json:"sellerId"`
	Buyer     ledger.Ref `json:"buyerId"`
	Quantity  int        `json:"quantity"`
	Price     float64    `json:"price"`
	Amount    float64    `json:"amount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToSellResponse converts a sell using the names resolved in n
func ToSellResponse(s *ledger.Sell, n names) SellResponse {
	resp := SellResponse{
		ID:        s.ID,
		Product:   n.product(s.ProductID),
		Brand:     ledger.RefTo(s.BrandID),
		Seller:    n.user(s.SellerID),
		Quantity:  s.Quantity,
		Price:     s.Price.InexactFloat64(),
		Amount:    s.Amount().InexactFloat64(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.BuyerID != nil {
		resp.Buyer = n.user(*s.BuyerID)
	}
	return resp
}

// PurchaseRequest is the payload for creating or updating a purchase
type PurchaseRequest struct {
	Product  ledger.Ref      `json:"productId"`
	Firm     ledger.Ref      `json:"firmId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (r PurchaseRequest) toInput() (ledger.PurchaseInput, error) {
	productID, err := refID("product", r.Product)
	if err != nil {
		return ledger.PurchaseInput{}, err
	}
	firmID, err := refID("firm", r.Firm)
	if err != nil {
		return ledger.PurchaseInput{}, err
	}
	in := ledger.PurchaseInput{
		ProductID: productID,
		Quantity:  r.Quantity,
		Price:     r.Price,
	}
	if firmID != uuid.Nil {
		in.FirmID = &firmID
	}
	return in, nil
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID        uuid.UUID  `json:"_id"`
	Product   ledger.Ref `json:"productId"`
	Brand     ledger.Ref `json:"brandId"`
	Firm      ledger.Ref `json:"firmId"`
	CreatedBy ledger.Ref `json:"createdBy"`
	Quantity  int        `json:"quantity"`
	Price     float64    `json:"price"`
	Amount    float64    `json:"amount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToPurchaseResponse converts a purchase using the names resolved in n
func ToPurchaseResponse(p *ledger.Purchase, n names) PurchaseResponse {
	resp := PurchaseResponse{
		ID:        p.ID,
		Product:   n.product(p.ProductID),
		Brand:     ledger.RefTo(p.BrandID),
		CreatedBy: n.user(p.CreatedBy),
		Quantity:  p.Quantity,
		Price:     p.Price.InexactFloat64(),
		Amount:    p.Amount().InexactFloat64(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.FirmID != nil {
		resp.Firm = ledger.RefTo(*p.FirmID)
	}
	return resp
}

// refID parses an optional reference. A missing reference yields uuid.Nil
// and is reported by domain validation.
func refID(field string, ref ledger.Ref) (uuid.UUID, error) {
	if ref.IsZero() {
		return uuid.Nil, nil
	}
	id, err := ref.UUID()
	if err != nil {
		return uuid.Nil, shared.Validation("Invalid %s id", field)
	}
	return id, nil
}
