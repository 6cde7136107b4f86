package repositories

import (
	"fmt"

	"gudang/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVendorRepository is a GORM implementation of VendorRepository.
type GORMVendorRepository struct {
	db *gorm.DB
}

// NewGORMVendorRepository creates a new instance of GORMVendorRepository.
func NewGORMVendorRepository(db *gorm.DB) *GORMVendorRepository {
	return &GORMVendorRepository{
		db: db,
	}
}

// GetAll retrieves every vendor sorted by name.
func (r *GORMVendorRepository) GetAll() ([]models.Vendor, error) {
	vendors := []models.Vendor{}
	if err := r.db.Order("vendor_name").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to get all vendors: %w", err)
	}
	return vendors, nil
}

// GetByID retrieves a single vendor by its ID.
func (r *GORMVendorRepository) GetByID(id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrVendorNotFound, id)
		}
		return nil, fmt.Errorf("failed to get vendor by ID %s: %w", id, err)
	}
	return &vendor, nil
}

// Create inserts a new vendor, assigning an ID when none is set.
func (r *GORMVendorRepository) Create(vendor *models.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if err := r.db.Create(vendor).Error; err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// Update saves all fields of an existing vendor.
func (r *GORMVendorRepository) Update(vendor *models.Vendor) error {
	res := r.db.Save(vendor)
	if res.Error != nil {
		return fmt.Errorf("failed to update vendor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrVendorNotFound, vendor.ID)
	}
	return nil
}

// Delete removes a vendor by its ID.
func (r *GORMVendorRepository) Delete(id string) error {
	res := r.db.Delete(&models.Vendor{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete vendor %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrVendorNotFound, id)
	}
	return nil
}
