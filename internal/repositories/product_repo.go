package repositories

import (
	"errors"

	"gudang/internal/models"
)

// ErrProductNotFound is returned when a product ID matches nothing.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows and pages the product listing.
type ProductFilter struct {
	Search      string // case-insensitive substring over name and description
	Category    string // exact match
	StockStatus string // exact match
	Page        int
	Limit       int
}

// Normalize applies the listing defaults: page 1, ten items per page.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
}

// ProductRepository abstracts product persistence.
type ProductRepository interface {
	Create(product *models.Product) error
	// GetByID returns the product with its vendor resolved.
	GetByID(id string) (*models.Product, error)
	// List returns one page of matches, newest first, plus the total match count.
	List(filter ProductFilter) ([]models.Product, int64, error)
	// UpdateFields writes exactly the given columns to the product row.
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
	// Categories returns the distinct category names, sorted.
	Categories() ([]string, error)
	// CountByVendor reports how many products reference the vendor.
	CountByVendor(vendorID string) (int64, error)
}
