package repositories

import (
	"errors"

	"gudang/internal/models"
)

// ErrVendorNotFound is returned when a vendor ID matches nothing.
var ErrVendorNotFound = errors.New("vendor not found")

// VendorRepository abstracts vendor persistence.
type VendorRepository interface {
	// GetAll returns every vendor sorted by name.
	GetAll() ([]models.Vendor, error)
	GetByID(id string) (*models.Vendor, error)
	Create(vendor *models.Vendor) error
	Update(vendor *models.Vendor) error
	Delete(id string) error
}
