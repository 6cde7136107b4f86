package pricing_test

import (
	"testing"
	"time"

	"gudang/internal/models"
	"gudang/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		tax      float64
		discount float64
		want     float64
	}{
		{"discount then tax", 100, 10, 20, 88.0}, // 100 * 0.8 * 1.1
		{"no tax no discount", 100, 0, 0, 100},
		{"zero price", 0, 10, 5, 0},
		{"full discount", 50, 19, 100, 0},
		{"tax only", 100, 5, 0, 105},
		{"discount only", 200, 0, 25, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.FinalPrice(tt.price, tt.tax, tt.discount)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFinalPriceMonotonic(t *testing.T) {
	// Non-decreasing in price and tax, non-increasing in discount, for the
	// whole valid input range.
	for price := 0.0; price <= 500; price += 50 {
		for tax := 0.0; tax <= 30; tax += 5 {
			for discount := 0.0; discount <= 100; discount += 10 {
				base := pricing.FinalPrice(price, tax, discount)
				assert.GreaterOrEqual(t, base, 0.0)
				assert.GreaterOrEqual(t, pricing.FinalPrice(price+10, tax, discount), base)
				assert.GreaterOrEqual(t, pricing.FinalPrice(price, tax+1, discount), base)
				if discount <= 90 {
					assert.LessOrEqual(t, pricing.FinalPrice(price, tax, discount+10), base)
				}
			}
		}
	}
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		qty  int
		want models.StockStatus
	}{
		{0, models.StockStatusOut},
		{1, models.StockStatusLow},
		{5, models.StockStatusLow}, // boundary is inclusive of Low Stock
		{6, models.StockStatusIn},
		{100, models.StockStatusIn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pricing.StockStatus(tt.qty), "qty=%d", tt.qty)
	}
}

func existingProduct() *models.Product {
	return &models.Product{
		ID:              "PROD1",
		ProductName:     "Ledger Book",
		ProductCategory: "Stationery",
		ProductPrice:    100,
		ProductTax:      10,
		ProductDiscount: 20,
		ProductQty:      10,
		FinalPrice:      88,
		StockStatus:     models.StockStatusIn,
	}
}

func TestDerivedFieldsQuantityOnly(t *testing.T) {
	qty := 0
	fields := pricing.DerivedFields(existingProduct(), &models.ProductPatch{ProductQty: &qty})

	assert.Equal(t, 0, fields["product_qty"])
	assert.Equal(t, models.StockStatusOut, fields["stock_status"])
	// The final price was not touched, so it must not be rewritten.
	assert.NotContains(t, fields, "final_price")
	assert.Len(t, fields, 2)
}

func TestDerivedFieldsPriceOnly(t *testing.T) {
	price := 200.0
	fields := pricing.DerivedFields(existingProduct(), &models.ProductPatch{ProductPrice: &price})

	// Recomputed with the stored tax (10) and discount (20).
	assert.InDelta(t, 176.0, fields["final_price"], 1e-9)
	assert.NotContains(t, fields, "stock_status")
	assert.NotContains(t, fields, "product_qty")
}

func TestDerivedFieldsTaxAndDiscount(t *testing.T) {
	tax, discount := 0.0, 50.0
	fields := pricing.DerivedFields(existingProduct(), &models.ProductPatch{
		ProductTax:      &tax,
		ProductDiscount: &discount,
	})

	// Stored price 100, new tax 0, new discount 50.
	assert.InDelta(t, 50.0, fields["final_price"], 1e-9)
	assert.NotContains(t, fields, "stock_status")
}

func TestDerivedFieldsNonPricingFields(t *testing.T) {
	name := "Renamed"
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	fields := pricing.DerivedFields(existingProduct(), &models.ProductPatch{
		ProductName:  &name,
		PurchaseDate: &date,
	})

	assert.Equal(t, "Renamed", fields["product_name"])
	assert.Equal(t, date, fields["purchase_date"])
	assert.NotContains(t, fields, "final_price")
	assert.NotContains(t, fields, "stock_status")
}

func TestDerivedFieldsEmptyPatch(t *testing.T) {
	fields := pricing.DerivedFields(existingProduct(), &models.ProductPatch{})
	assert.Empty(t, fields)
}

func TestDerivedFieldsDoesNotMutateExisting(t *testing.T) {
	existing := existingProduct()
	price := 999.0
	qty := 0
	pricing.DerivedFields(existing, &models.ProductPatch{ProductPrice: &price, ProductQty: &qty})

	assert.Equal(t, 100.0, existing.ProductPrice)
	assert.Equal(t, 10, existing.ProductQty)
	assert.Equal(t, models.StockStatusIn, existing.StockStatus)
}
