package models

import (
	"time"

	"gorm.io/gorm"
)

// StockStatus classifies how much of a product is left on hand.
type StockStatus string

const (
	StockStatusIn  StockStatus = "In Stock"
	StockStatusLow StockStatus = "Low Stock"
	StockStatusOut StockStatus = "Out of Stock"
)

// Product represents a tracked inventory item. Field names follow the wire
// format the admin frontend submits and expects back.
type Product struct {
	ID                 string      `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	ProductName        string      `json:"product_name" gorm:"type:varchar(255);not null" validate:"required"`
	ProductCategory    string      `json:"product_category" gorm:"type:varchar(100);not null" validate:"required"`
	ProductPrice       float64     `json:"product_price" validate:"gte=0"`
	ProductTax         float64     `json:"product_tax" validate:"gte=0"`
	ProductQty         int         `json:"product_qty" validate:"gte=0"`
	ProductImage       string      `json:"product_image"`
	ProductDescription string      `json:"product_description"`
	ProductDiscount    float64     `json:"product_discount" validate:"gte=0,lte=100"`
	PurchaseDate       time.Time   `json:"purchase_date" validate:"required"`
	VendorID           string      `json:"vendor_id" gorm:"type:varchar(36);index" validate:"required"`
	Vendor             *Vendor     `json:"vendor_reference,omitempty" gorm:"foreignKey:VendorID"`
	FinalPrice         float64     `json:"final_price"`
	StockStatus        StockStatus `json:"stock_status" gorm:"type:varchar(20)"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductPatch carries the fields present in a partial product update.
// A nil field was absent from the write and keeps its stored value. The
// tags use omitnil, not omitempty: a present-but-empty value must still be
// validated, otherwise a write could blank a required field.
type ProductPatch struct {
	ProductName        *string    `validate:"omitnil,min=1"`
	ProductCategory    *string    `validate:"omitnil,min=1"`
	ProductPrice       *float64   `validate:"omitnil,gte=0"`
	ProductTax         *float64   `validate:"omitnil,gte=0"`
	ProductQty         *int       `validate:"omitnil,gte=0"`
	ProductImage       *string    `validate:"-"`
	ProductDescription *string    `validate:"-"`
	ProductDiscount    *float64   `validate:"omitnil,gte=0,lte=100"`
	PurchaseDate       *time.Time `validate:"-"`
	VendorID           *string    `validate:"omitnil,min=1"`
}

// ProductPage is the envelope returned by the paginated product listing.
type ProductPage struct {
	Products      []Product `json:"products"`
	CurrentPage   int       `json:"currentPage"`
	TotalPages    int       `json:"totalPages"`
	TotalProducts int64     `json:"totalProducts"`
}
