package report

import (
	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/report"
)

// ProductCountResponse names the product leading one counter
type ProductCountResponse struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Count int       `json:"count"`
}

// BuyerTotalResponse is one entry of a category's top buyers
type BuyerTotalResponse struct {
	ID             uuid.UUID `json:"_id"`
	TotalPurchased int64     `json:"totalPurchased"`
}

// SellerTotalResponse is one entry of a category's top sellers
type SellerTotalResponse struct {
	ID        uuid.UUID `json:"_id"`
	TotalSold int64     `json:"totalSold"`
}

// CategorySummaryResponse is the payload of GET /categories/:id/summary.
// mostPurchased and mostSold are null for an empty category; the ranking
// arrays are always present.
type CategorySummaryResponse struct {
	ProductCount  int64                 `json:"productCount"`
	MostPurchased *ProductCountResponse `json:"mostPurchased"`
	MostSold      *ProductCountResponse `json:"mostSold"`
	TopBuyers     []BuyerTotalResponse  `json:"topBuyers"`
	TopSellers    []SellerTotalResponse `json:"topSellers"`
	TotalSpent    float64               `json:"totalSpent"`
	TotalGained   float64               `json:"totalGained"`
	Profit        float64               `json:"profit"`
}

// ToCategorySummaryResponse converts a computed summary
func ToCategorySummaryResponse(s *report.CategorySummary) CategorySummaryResponse {
	resp := CategorySummaryResponse{
		ProductCount:  s.ProductCount,
		MostPurchased: toProductCount(s.MostPurchased),
		MostSold:      toProductCount(s.MostSold),
		TopBuyers:     make([]BuyerTotalResponse, len(s.TopBuyers)),
		TopSellers:    make([]SellerTotalResponse, len(s.TopSellers)),
		TotalSpent:    s.Totals.Spent.InexactFloat64(),
		TotalGained:   s.Totals.Gained.InexactFloat64(),
		Profit:        s.Totals.Profit().InexactFloat64(),
	}
	for i, b := range s.TopBuyers {
		resp.TopBuyers[i] = BuyerTotalResponse{ID: b.ID, TotalPurchased: b.Quantity}
	}
	for i, b := range s.TopSellers {
		resp.TopSellers[i] = SellerTotalResponse{ID: b.ID, TotalSold: b.Quantity}
	}
	return resp
}

func toProductCount(pc *report.ProductCount) *ProductCountResponse {
	if pc == nil {
		return nil
	}
	return &ProductCountResponse{ID: pc.ProductID, Name: pc.Name, Count: pc.Count}
}

// TotalsResponse sums a rolled-up sell collection
type TotalsResponse struct {
	Count    int     `json:"count"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}

// ProductRollupResponse is one product line of a rollup
type ProductRollupResponse struct {
	ID                   string  `json:"_id"`
	Name                 string  `json:"name"`
	Quantity             int     `json:"quantity"`
	Revenue              float64 `json:"revenue"`
	Profit               float64 `json:"profit"`
	AverageSellPrice     float64 `json:"averageSellPrice"`
	AveragePurchasePrice float64 `json:"averagePurchasePrice"`
	AverageProfitPerUnit float64 `json:"averageProfitPerUnit"`
}

// SellerRollupResponse is one seller line of a rollup
type SellerRollupResponse struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}

// RollupResponse is the payload of GET /sells/rollup
type RollupResponse struct {
	Totals     TotalsResponse          `json:"totals"`
	PerProduct []ProductRollupResponse `json:"perProduct"`
	PerSeller  []SellerRollupResponse  `json:"perSeller"`
}

// ToRollupResponse converts a rollup for the wire
func ToRollupResponse(r report.Rollup) RollupResponse {
	resp := RollupResponse{
		Totals: TotalsResponse{
			Count:    r.Totals.Count,
			Quantity: r.Totals.Quantity,
			Revenue:  r.Totals.Revenue.InexactFloat64(),
			Profit:   r.Totals.Profit.InexactFloat64(),
		},
		PerProduct: make([]ProductRollupResponse, len(r.PerProduct)),
		PerSeller:  make([]SellerRollupResponse, len(r.PerSeller)),
	}
	for i, p := range r.PerProduct {
		resp.PerProduct[i] = ProductRollupResponse{
			ID:                   p.ProductID,
			Name:                 p.Name,
			Quantity:             p.Quantity,
			Revenue:              p.Revenue.InexactFloat64(),
			Profit:               p.Profit.InexactFloat64(),
			AverageSellPrice:     p.AverageSellPrice.InexactFloat64(),
			AveragePurchasePrice: p.AveragePurchasePrice.InexactFloat64(),
			AverageProfitPerUnit: p.AverageProfitPerUnit.InexactFloat64(),
		}
	}
	for i, s := range r.PerSeller {
		resp.PerSeller[i] = SellerRollupResponse{
			ID:       s.SellerID,
			Name:     s.Name,
			Quantity: s.Quantity,
			Revenue:  s.Revenue.InexactFloat64(),
			Profit:   s.Profit.InexactFloat64(),
		}
	}
	return resp
}
