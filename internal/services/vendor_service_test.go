package services_test

import (
	"testing"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/stretchr/testify/assert"
)

func newVendorService(t *testing.T) (*services.VendorService, *services.ProductService, repositories.VendorRepository) {
	t.Helper()
	vendors := repositories.NewMockVendorRepository()
	products := repositories.NewMockProductRepository()
	vendorService := services.NewVendorService(vendors, products, testLogger())
	productService := services.NewProductService(products, vendors, nil, testLogger())
	return vendorService, productService, vendors
}

func TestDeleteVendorBlockedByProducts(t *testing.T) {
	vendorService, productService, vendors := newVendorService(t)
	vendor := seedVendor(t, vendors)

	created, err := productService.CreateProduct(&models.Product{
		ProductName:     "Ledger Book",
		ProductCategory: "Stationery",
		ProductPrice:    100,
		ProductQty:      3,
		PurchaseDate:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		VendorID:        vendor.ID,
	})
	assert.NoError(t, err)

	err = vendorService.DeleteVendor(vendor.ID)
	assert.ErrorIs(t, err, services.ErrVendorHasProducts)

	// Both records stay intact after the rejected deletion.
	_, err = vendorService.GetVendorByID(vendor.ID)
	assert.NoError(t, err)
	_, err = productService.GetProduct(created.ID)
	assert.NoError(t, err)

	// Removing the last referencing product unblocks the deletion.
	assert.NoError(t, productService.DeleteProduct(created.ID))
	assert.NoError(t, vendorService.DeleteVendor(vendor.ID))
}

func TestDeleteVendorWithoutProducts(t *testing.T) {
	vendorService, _, vendors := newVendorService(t)
	vendor := seedVendor(t, vendors)

	assert.NoError(t, vendorService.DeleteVendor(vendor.ID))

	_, err := vendorService.GetVendorByID(vendor.ID)
	assert.ErrorIs(t, err, repositories.ErrVendorNotFound)
}

func TestDeleteVendorNotFound(t *testing.T) {
	vendorService, _, _ := newVendorService(t)
	assert.ErrorIs(t, vendorService.DeleteVendor("no-such-vendor"), repositories.ErrVendorNotFound)
}

func TestUpdateVendor(t *testing.T) {
	vendorService, _, vendors := newVendorService(t)
	vendor := seedVendor(t, vendors)

	updated, err := vendorService.UpdateVendor(vendor.ID, &models.Vendor{
		VendorName:    "Acme Supplies Ltd",
		ContactPerson: "Jordan Lee",
		Email:         "sales@acme.example",
		Phone:         "555-0199",
		Address:       "2 Warehouse Way",
		TaxID:         "TAX-42",
	})
	assert.NoError(t, err)
	assert.Equal(t, vendor.ID, updated.ID)
	assert.Equal(t, "Acme Supplies Ltd", updated.VendorName)
	assert.Equal(t, "TAX-42", updated.TaxID)
}

func TestUpdateVendorNotFound(t *testing.T) {
	vendorService, _, _ := newVendorService(t)

	updated, err := vendorService.UpdateVendor("no-such-vendor", &models.Vendor{VendorName: "Ghost"})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrVendorNotFound)
}

func TestGetAllVendorsSortedByName(t *testing.T) {
	vendorService, _, vendors := newVendorService(t)

	for _, name := range []string{"Zenith Parts", "Acme Supplies", "Midway Goods"} {
		assert.NoError(t, vendors.Create(&models.Vendor{
			VendorName:    name,
			ContactPerson: "Contact",
			Email:         "contact@example.com",
			Phone:         "555-0100",
			Address:       "Somewhere",
		}))
	}

	all, err := vendorService.GetAllVendors()
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Acme Supplies", all[0].VendorName)
	assert.Equal(t, "Midway Goods", all[1].VendorName)
	assert.Equal(t, "Zenith Parts", all[2].VendorName)
}

func TestVendorNormalize(t *testing.T) {
	vendor := &models.Vendor{
		VendorName:    "  Acme Supplies  ",
		ContactPerson: " Jordan Lee ",
		Email:         " Jordan@Acme.Example ",
		Phone:         " 555-0100 ",
		Address:       " 1 Warehouse Way ",
		TaxID:         " TAX-1 ",
	}
	vendor.Normalize()

	assert.Equal(t, "Acme Supplies", vendor.VendorName)
	assert.Equal(t, "Jordan Lee", vendor.ContactPerson)
	assert.Equal(t, "jordan@acme.example", vendor.Email)
	assert.Equal(t, "555-0100", vendor.Phone)
	assert.Equal(t, "1 Warehouse Way", vendor.Address)
	assert.Equal(t, "TAX-1", vendor.TaxID)
}
