package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gudang/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the listing semantics of the GORM implementation so service
// tests can run without a database.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string // insertion order, oldest first
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product with ID %s already exists", product.ID)
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return &product, nil
}

func matches(p *models.Product, filter ProductFilter) bool {
	if filter.Category != "" && p.ProductCategory != filter.Category {
		return false
	}
	if filter.StockStatus != "" && string(p.StockStatus) != filter.StockStatus {
		return false
	}
	if filter.Search != "" {
		term := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.ProductName), term) &&
			!strings.Contains(strings.ToLower(p.ProductDescription), term) {
			return false
		}
	}
	return true
}

// List returns one page of matching products, newest first, plus the total
// match count.
func (r *MockProductRepository) List(filter ProductFilter) ([]models.Product, int64, error) {
	filter.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Product{}
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.products[r.order[i]]
		if matches(&p, filter) {
			matched = append(matched, p)
		}
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// UpdateFields writes exactly the given columns onto the stored product.
func (r *MockProductRepository) UpdateFields(id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	for column, value := range fields {
		switch column {
		case "product_name":
			p.ProductName = value.(string)
		case "product_category":
			p.ProductCategory = value.(string)
		case "product_price":
			p.ProductPrice = value.(float64)
		case "product_tax":
			p.ProductTax = value.(float64)
		case "product_qty":
			p.ProductQty = value.(int)
		case "product_image":
			p.ProductImage = value.(string)
		case "product_description":
			p.ProductDescription = value.(string)
		case "product_discount":
			p.ProductDiscount = value.(float64)
		case "purchase_date":
			p.PurchaseDate = value.(time.Time)
		case "vendor_id":
			p.VendorID = value.(string)
		case "final_price":
			p.FinalPrice = value.(float64)
		case "stock_status":
			p.StockStatus = value.(models.StockStatus)
		default:
			return fmt.Errorf("unknown product column %q", column)
		}
	}
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	delete(r.products, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Categories returns the distinct category names, sorted.
func (r *MockProductRepository) Categories() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range r.products {
		if !seen[p.ProductCategory] {
			seen[p.ProductCategory] = true
			categories = append(categories, p.ProductCategory)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// CountByVendor reports how many products reference the vendor.
func (r *MockProductRepository) CountByVendor(vendorID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.VendorID == vendorID {
			count++
		}
	}
	return count, nil
}
