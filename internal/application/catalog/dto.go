package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/catalog"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// CategoryRequest is the body of a category create or update
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// BrandRequest is the body of a brand create or update
type BrandRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Image string `json:"image" binding:"omitempty,max=500"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToBrandResponse converts a domain Brand to BrandResponse
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{ID: b.ID, Name: b.Name, Image: b.Image, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

// FirmRequest is the body of a firm create or update
type FirmRequest struct {
	Name    string `json:"name" binding:"required,max=150"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Address string `json:"address" binding:"omitempty,max=300"`
	Image   string `json:"image" binding:"omitempty,max=500"`
}

// FirmResponse represents a firm in API responses
type FirmResponse struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToFirmResponse converts a domain Firm to FirmResponse
func ToFirmResponse(f *catalog.Firm) FirmResponse {
	return FirmResponse{
		ID:        f.ID,
		Name:      f.Name,
		Phone:     f.Phone,
		Address:   f.Address,
		Image:     f.Image,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ProductRequest is the body of a product create or update.
// Stock counters are not accepted; the ledger maintains them.
type ProductRequest struct {
	Name       string          `json:"name" binding:"required,max=200"`
	CategoryID string          `json:"categoryId"`
	BrandID    string          `json:"brandId"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image" binding:"omitempty,max=500"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID `json:"_id"`
	Name          string    `json:"name"`
	CategoryID    uuid.UUID `json:"categoryId"`
	BrandID       uuid.UUID `json:"brandId"`
	Price         float64   `json:"price"`
	Image         string    `json:"image,omitempty"`
	Quantity      int       `json:"quantity"`
	PurchaseCount int       `json:"purchaseCount"`
	SoldCount     int       `json:"soldCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		BrandID:       p.BrandID,
		Price:         p.Price.InexactFloat64(),
		Image:         p.Image,
		Quantity:      p.Quantity,
		PurchaseCount: p.PurchaseCount,
		SoldCount:     p.SoldCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// parseID parses an optional id field. Empty input yields uuid.Nil so the
// domain can report the missing value; malformed input is a validation error.
func parseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.Validation("Invalid %s", field)
	}
	return id, nil
}
