// internal/domain/pricing/pricing.go
package pricing

import "github.com/ohana-chilli/storefront/internal/domain/catalog"

// Totals represents calculated cart totals
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Total    int64 `json:"total"`
}

// BowlPreview is the live price of an in-progress bowl. Only proteins carry
// surcharges; bases and acompanantes are included in the size price.
func BowlPreview(size catalog.SizeRule, proteins []catalog.Ingredient) int64 {
	price := size.BasePrice
	for _, p := range proteins {
		price += p.Price
	}
	return price
}

// CustomBowl returns the unit price of a finished bowl
func CustomBowl(bowl catalog.CustomBowl) int64 {
	return BowlPreview(bowl.Size, bowl.Proteins)
}

// CatalogProduct returns the unit price of a ready-made product. Modifiers
// are not priced.
func CatalogProduct(product catalog.Product) int64 {
	return product.Price
}

// LineTotal returns unitPrice * quantity
func LineTotal(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

// CartTotals sums line totals. There is no tax, fee or discount layer so
// Total always equals Subtotal; a future fee belongs here as its own term.
func CartTotals(lineTotals []int64) Totals {
	var totals Totals
	for _, lt := range lineTotals {
		totals.Subtotal += lt
	}
	totals.Total = totals.Subtotal
	return totals
}
