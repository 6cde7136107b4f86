package models

import (
	"strings"

	"gorm.io/gorm"
)

// Vendor represents a supplier products are purchased from. Products keep a
// non-owning reference to a vendor by ID; the vendor's lifetime is
// independent of the products that point at it.
type Vendor struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorName    string `json:"vendor_name" gorm:"type:varchar(255);not null" validate:"required"`
	ContactPerson string `json:"contact_person" gorm:"type:varchar(255)" validate:"required"`
	Email         string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Phone         string `json:"phone" gorm:"type:varchar(50)" validate:"required"`
	Address       string `json:"address" validate:"required"`
	TaxID         string `json:"tax_id" gorm:"type:varchar(100)"`
	gorm.Model    // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Normalize trims the submitted fields and lowercases the email, so that the
// required-field validation sees whitespace-only input as empty.
func (v *Vendor) Normalize() {
	v.VendorName = strings.TrimSpace(v.VendorName)
	v.ContactPerson = strings.TrimSpace(v.ContactPerson)
	v.Email = strings.ToLower(strings.TrimSpace(v.Email))
	v.Phone = strings.TrimSpace(v.Phone)
	v.Address = strings.TrimSpace(v.Address)
	v.TaxID = strings.TrimSpace(v.TaxID)
}
