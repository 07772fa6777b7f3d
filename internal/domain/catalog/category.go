package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// Category groups products. Names are unique per tenant.
type Category struct {
	shared.TenantEntity
	Name string
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name string) (*Category, error) {
	c := &Category{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName("Category", name, 100); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// Brand is the manufacturer label of a product
type Brand struct {
	shared.TenantEntity
	Name  string
	Image string
}

// NewBrand creates a new brand
func NewBrand(tenantID uuid.UUID, name, image string) (*Brand, error) {
	b := &Brand{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := b.Update(name, image); err != nil {
		return nil, err
	}
	return b, nil
}

// Update changes the brand name and image
func (b *Brand) Update(name, image string) error {
	name = strings.TrimSpace(name)
	if err := validateName("Brand", name, 100); err != nil {
		return err
	}
	b.Name = name
	b.Image = strings.TrimSpace(image)
	b.Touch()
	return nil
}

// Firm is a supplier that purchases are bought from
type Firm struct {
	shared.TenantEntity
	Name    string
	Phone   string
	Address string
	Image   string
}

// NewFirm creates a new firm
func NewFirm(tenantID uuid.UUID, name, phone, address, image string) (*Firm, error) {
	f := &Firm{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := f.Update(name, phone, address, image); err != nil {
		return nil, err
	}
	return f, nil
}

// Update changes the firm contact details
func (f *Firm) Update(name, phone, address, image string) error {
	name = strings.TrimSpace(name)
	if err := validateName("Firm", name, 150); err != nil {
		return err
	}
	f.Name = name
	f.Phone = strings.TrimSpace(phone)
	f.Address = strings.TrimSpace(address)
	f.Image = strings.TrimSpace(image)
	f.Touch()
	return nil
}
