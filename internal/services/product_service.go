package services

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gudang/internal/barcode"
	"gudang/internal/models"
	"gudang/internal/pricing"
	"gudang/internal/repositories"
	"gudang/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

// ProductService handles business logic related to products: identifier
// generation, derived-field computation on every write, the paginated
// listing, and barcode rendering for a stored product.
type ProductService struct {
	products repositories.ProductRepository
	vendors  repositories.VendorRepository
	mq       *rabbitmq.Client // nil disables event publishing
	log      *logrus.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(products repositories.ProductRepository, vendors repositories.VendorRepository, mq *rabbitmq.Client, log *logrus.Logger) *ProductService {
	return &ProductService{
		products: products,
		vendors:  vendors,
		mq:       mq,
		log:      log,
	}
}

// newProductID generates a product identifier in the PROD<millis><rand>
// format the label printers already expect.
func newProductID() string {
	return fmt.Sprintf("PROD%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// ListProducts returns one page of products matching the filter, together
// with the paging envelope the listing endpoint responds with.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) (*models.ProductPage, error) {
	filter.Normalize()

	products, total, err := s.products.List(filter)
	if err != nil {
		return nil, err
	}

	return &models.ProductPage{
		Products:      products,
		CurrentPage:   filter.Page,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		TotalProducts: total,
	}, nil
}

// GetProduct retrieves a single product with its vendor resolved.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.products.GetByID(id)
}

// CreateProduct assigns a fresh identifier, computes the derived fields and
// persists the product. The vendor reference must point at an existing
// vendor.
func (s *ProductService) CreateProduct(p *models.Product) (*models.Product, error) {
	if _, err := s.vendors.GetByID(p.VendorID); err != nil {
		return nil, err
	}

	// The millisecond+random format leaves a tiny collision window when two
	// products are created in the same millisecond.
	p.ID = newProductID()
	for attempt := 0; attempt < 3; attempt++ {
		if _, err := s.products.GetByID(p.ID); err != nil {
			break
		}
		p.ID = newProductID()
	}

	p.FinalPrice = pricing.FinalPrice(p.ProductPrice, p.ProductTax, p.ProductDiscount)
	p.StockStatus = pricing.StockStatus(p.ProductQty)

	if err := s.products.Create(p); err != nil {
		return nil, err
	}

	created, err := s.products.GetByID(p.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.EventProductCreated, created)
	s.publishStockAlert(created)
	return created, nil
}

// UpdateProduct applies a partial update: only the fields present in the
// patch are written, plus whichever derived fields they affect. The stock
// status is recomputed only when the quantity is part of the write.
func (s *ProductService) UpdateProduct(id string, patch *models.ProductPatch) (*models.Product, error) {
	existing, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.VendorID != nil {
		if _, err := s.vendors.GetByID(*patch.VendorID); err != nil {
			return nil, err
		}
	}

	fields := pricing.DerivedFields(existing, patch)
	if err := s.products.UpdateFields(id, fields); err != nil {
		return nil, err
	}

	updated, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.EventProductUpdated, updated)
	if patch.ProductQty != nil {
		s.publishStockAlert(updated)
	}
	return updated, nil
}

// DeleteProduct removes a product unconditionally. Its identifier is never
// reused.
func (s *ProductService) DeleteProduct(id string) error {
	p, err := s.products.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.publishEvent(rabbitmq.EventProductDeleted, p)
	return nil
}

// Categories returns the distinct product categories.
func (s *ProductService) Categories() ([]string, error) {
	return s.products.Categories()
}

// Barcode renders the product's identifier as a Code 128 PNG.
func (s *ProductService) Barcode(id string) ([]byte, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	return barcode.Code128PNG(p.ID)
}

// QRCode renders the product's identifier as a QR code PNG.
func (s *ProductService) QRCode(id string) ([]byte, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	return barcode.QRCodePNG(p.ID)
}

// publishEvent emits a lifecycle event for the product. Publishing is best
// effort; a broker failure never fails the write.
func (s *ProductService) publishEvent(eventType string, p *models.Product) {
	if s.mq == nil {
		return
	}
	event := rabbitmq.StockEvent{
		Type:      eventType,
		ProductID: p.ID,
		Name:      p.ProductName,
		Qty:       p.ProductQty,
		Status:    string(p.StockStatus),
		At:        time.Now(),
	}
	if err := s.mq.PublishStockEvent(event); err != nil {
		s.log.WithError(err).Warnf("failed to publish %s event for product %s", eventType, p.ID)
	}
}

// publishStockAlert emits a low/out-of-stock alert when a write that touched
// the quantity left the product in a depleted state.
func (s *ProductService) publishStockAlert(p *models.Product) {
	switch p.StockStatus {
	case models.StockStatusLow:
		s.publishEvent(rabbitmq.EventStockLow, p)
	case models.StockStatusOut:
		s.publishEvent(rabbitmq.EventStockOut, p)
	}
}
