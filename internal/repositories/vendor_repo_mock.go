package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gudang/internal/models"

	"github.com/google/uuid"
)

// MockVendorRepository is an in-memory implementation of VendorRepository.
type MockVendorRepository struct {
	vendors map[string]models.Vendor
	mu      sync.RWMutex
}

// NewMockVendorRepository creates a new instance of MockVendorRepository.
func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{
		vendors: make(map[string]models.Vendor),
	}
}

// GetAll returns every vendor sorted by name.
func (r *MockVendorRepository) GetAll() ([]models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make([]models.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		vendors = append(vendors, v)
	}
	sort.Slice(vendors, func(i, j int) bool {
		return vendors[i].VendorName < vendors[j].VendorName
	})
	return vendors, nil
}

// GetByID returns a vendor by its ID.
func (r *MockVendorRepository) GetByID(id string) (*models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendor, ok := r.vendors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVendorNotFound, id)
	}
	return &vendor, nil
}

// Create adds a new vendor, assigning an ID when none is set.
func (r *MockVendorRepository) Create(vendor *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = time.Now()
	}
	vendor.UpdatedAt = vendor.CreatedAt
	r.vendors[vendor.ID] = *vendor
	return nil
}

// Update replaces an existing vendor.
func (r *MockVendorRepository) Update(vendor *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vendors[vendor.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrVendorNotFound, vendor.ID)
	}
	vendor.UpdatedAt = time.Now()
	r.vendors[vendor.ID] = *vendor
	return nil
}

// Delete removes a vendor by its ID.
func (r *MockVendorRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vendors[id]; !ok {
		return fmt.Errorf("%w: %s", ErrVendorNotFound, id)
	}
	delete(r.vendors, id)
	return nil
}
