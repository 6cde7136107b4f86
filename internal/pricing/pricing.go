package pricing

import (
	"gudang/internal/models"
)

// FinalPrice derives the stored selling price from the raw pricing fields:
// the discount is applied to the unit price first, then tax is charged on
// the discounted amount. The result is stored unrounded; rounding happens at
// presentation time so repeated recomputation does not compound errors.
//
// Inputs are assumed to have passed the data-entry validation (price >= 0,
// tax >= 0, 0 <= discount <= 100). No clamping happens here.
func FinalPrice(price, taxPercent, discountPercent float64) float64 {
	discounted := price - price*(discountPercent/100)
	return discounted + discounted*(taxPercent/100)
}

// StockStatus classifies a quantity on hand. The boundary at 5 is inclusive
// of Low Stock: qty == 0 is out, 0 < qty <= 5 is low, anything above is in
// stock.
func StockStatus(qty int) models.StockStatus {
	switch {
	case qty == 0:
		return models.StockStatusOut
	case qty <= 5:
		return models.StockStatusLow
	default:
		return models.StockStatusIn
	}
}

// DerivedFields merges a partial update over the existing record and returns
// exactly the columns that should be written back: the patch fields that were
// present, plus final_price whenever any pricing field (price, tax, discount)
// was touched, plus stock_status only when the quantity was touched.
//
// Leaving stock_status alone on quantity-free writes is deliberate: the
// status is derived on touch, not continuously maintained, matching the
// behavior this system has always had.
//
// The function is pure; it never performs I/O and never mutates existing.
func DerivedFields(existing *models.Product, patch *models.ProductPatch) map[string]interface{} {
	fields := map[string]interface{}{}

	if patch.ProductName != nil {
		fields["product_name"] = *patch.ProductName
	}
	if patch.ProductCategory != nil {
		fields["product_category"] = *patch.ProductCategory
	}
	if patch.ProductImage != nil {
		fields["product_image"] = *patch.ProductImage
	}
	if patch.ProductDescription != nil {
		fields["product_description"] = *patch.ProductDescription
	}
	if patch.PurchaseDate != nil {
		fields["purchase_date"] = *patch.PurchaseDate
	}
	if patch.VendorID != nil {
		fields["vendor_id"] = *patch.VendorID
	}

	// For the final price all three inputs must be known; fall back to the
	// stored value for whichever of price/tax/discount the patch omits.
	price := existing.ProductPrice
	tax := existing.ProductTax
	discount := existing.ProductDiscount
	pricingTouched := false

	if patch.ProductPrice != nil {
		price = *patch.ProductPrice
		fields["product_price"] = price
		pricingTouched = true
	}
	if patch.ProductTax != nil {
		tax = *patch.ProductTax
		fields["product_tax"] = tax
		pricingTouched = true
	}
	if patch.ProductDiscount != nil {
		discount = *patch.ProductDiscount
		fields["product_discount"] = discount
		pricingTouched = true
	}
	if pricingTouched {
		fields["final_price"] = FinalPrice(price, tax, discount)
	}

	if patch.ProductQty != nil {
		fields["product_qty"] = *patch.ProductQty
		fields["stock_status"] = StockStatus(*patch.ProductQty)
	}

	return fields
}
