package services

import (
	"errors"
	"fmt"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ErrVendorHasProducts is returned when a vendor deletion is blocked because
// products still reference it.
var ErrVendorHasProducts = errors.New("cannot delete vendor with associated products")

// VendorService handles business logic related to vendors, including the
// referential-integrity guard on deletion.
type VendorService struct {
	vendors  repositories.VendorRepository
	products repositories.ProductRepository
	log      *logrus.Logger
}

// NewVendorService creates a new VendorService.
func NewVendorService(vendors repositories.VendorRepository, products repositories.ProductRepository, log *logrus.Logger) *VendorService {
	return &VendorService{
		vendors:  vendors,
		products: products,
		log:      log,
	}
}

// GetAllVendors retrieves every vendor sorted by name.
func (s *VendorService) GetAllVendors() ([]models.Vendor, error) {
	return s.vendors.GetAll()
}

// GetVendorByID retrieves a single vendor by its ID.
func (s *VendorService) GetVendorByID(id string) (*models.Vendor, error) {
	return s.vendors.GetByID(id)
}

// CreateVendor persists a new vendor.
func (s *VendorService) CreateVendor(vendor *models.Vendor) error {
	return s.vendors.Create(vendor)
}

// UpdateVendor updates an existing vendor in place.
func (s *VendorService) UpdateVendor(id string, vendor *models.Vendor) (*models.Vendor, error) {
	existing, err := s.vendors.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.VendorName = vendor.VendorName
	existing.ContactPerson = vendor.ContactPerson
	existing.Email = vendor.Email
	existing.Phone = vendor.Phone
	existing.Address = vendor.Address
	existing.TaxID = vendor.TaxID

	if err := s.vendors.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteVendor removes a vendor unless products still reference it. The
// guard lives here, not in the storage layer.
func (s *VendorService) DeleteVendor(id string) error {
	if _, err := s.vendors.GetByID(id); err != nil {
		return err
	}

	count, err := s.products.CountByVendor(id)
	if err != nil {
		return fmt.Errorf("failed to check vendor references: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d product(s) still reference vendor %s", ErrVendorHasProducts, count, id)
	}

	return s.vendors.Delete(id)
}
