package repositories

import (
	"fmt"
	"strings"

	"gudang/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product row.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product with its vendor resolved.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Vendor").First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// filtered builds a fresh query with the listing filters applied. Each caller
// gets its own chain so counting and fetching don't share statement state.
func (r *GORMProductRepository) filtered(filter ProductFilter) *gorm.DB {
	q := r.db.Model(&models.Product{})
	if filter.Category != "" {
		q = q.Where("product_category = ?", filter.Category)
	}
	if filter.StockStatus != "" {
		q = q.Where("stock_status = ?", filter.StockStatus)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(product_name) LIKE ? OR LOWER(product_description) LIKE ?", term, term)
	}
	return q
}

// List returns one page of matching products, most recently created first,
// together with the total number of matches.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, int64, error) {
	filter.Normalize()

	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	err := r.filtered(filter).
		Preload("Vendor").
		Order("created_at DESC, id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// UpdateFields writes exactly the given columns to the product row.
func (r *GORMProductRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return nil
}

// Categories returns the distinct category names, sorted.
func (r *GORMProductRepository) Categories() ([]string, error) {
	categories := []string{}
	err := r.db.Model(&models.Product{}).
		Distinct("product_category").
		Order("product_category").
		Pluck("product_category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CountByVendor reports how many products reference the vendor.
func (r *GORMProductRepository) CountByVendor(vendorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("vendor_id = ?", vendorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products for vendor %s: %w", vendorID, err)
	}
	return count, nil
}
