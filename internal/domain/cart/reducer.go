// internal/domain/cart/reducer.go
package cart

import (
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/domain/pricing"
)

// Command is a cart mutation understood by Reduce
type Command interface {
	command()
}

// AddProduct adds a catalog product, merging into the line with the same
// product id and notes. LineID is used only when a new line is created.
type AddProduct struct {
	LineID   string
	Product  catalog.Product
	Quantity int
	Notes    string
}

// AddBowl appends a finished custom bowl as a new line of quantity one.
// Bowls are never merged.
type AddBowl struct {
	LineID string
	Bowl   catalog.CustomBowl
	Notes  string
}

// SetQuantity replaces a line's quantity; zero or less removes the line
type SetQuantity struct {
	LineID   string
	Quantity int
}

// RemoveLine drops a line
type RemoveLine struct {
	LineID string
}

// Clear empties the cart
type Clear struct{}

// Load replaces the cart with a stored snapshot
type Load struct {
	Cart Cart
}

func (AddProduct) command()  {}
func (AddBowl) command()     {}
func (SetQuantity) command() {}
func (RemoveLine) command()  {}
func (Clear) command()       {}
func (Load) command()        {}

// Reduce applies cmd to c and returns the resulting cart with totals
// recomputed. c is never modified. Unknown line ids are no-ops.
func Reduce(c Cart, cmd Command) Cart {
	items := append([]CartItem{}, c.Items...)

	switch cmd := cmd.(type) {
	case AddProduct:
		merged := false
		for i := range items {
			if items[i].Kind == KindProduct && items[i].Product != nil &&
				items[i].Product.ID == cmd.Product.ID && items[i].Notes == cmd.Notes {
				items[i].Quantity += cmd.Quantity
				items[i].LineTotal = pricing.LineTotal(items[i].UnitPrice, items[i].Quantity)
				merged = true
				break
			}
		}
		if !merged {
			product := cmd.Product
			unit := pricing.CatalogProduct(product)
			items = append(items, CartItem{
				ID:        cmd.LineID,
				Brand:     product.Brand,
				Kind:      KindProduct,
				Product:   &product,
				Quantity:  cmd.Quantity,
				Notes:     cmd.Notes,
				UnitPrice: unit,
				LineTotal: pricing.LineTotal(unit, cmd.Quantity),
			})
		}

	case AddBowl:
		bowl := cmd.Bowl
		unit := pricing.CustomBowl(bowl)
		items = append(items, CartItem{
			ID:         cmd.LineID,
			Brand:      catalog.BrandOhana,
			Kind:       KindCustomBowl,
			CustomBowl: &bowl,
			Quantity:   1,
			Notes:      cmd.Notes,
			UnitPrice:  unit,
			LineTotal:  unit,
		})

	case SetQuantity:
		if cmd.Quantity <= 0 {
			items = removeLine(items, cmd.LineID)
			break
		}
		for i := range items {
			if items[i].ID == cmd.LineID {
				items[i].Quantity = cmd.Quantity
				items[i].LineTotal = pricing.LineTotal(items[i].UnitPrice, cmd.Quantity)
				break
			}
		}

	case RemoveLine:
		items = removeLine(items, cmd.LineID)

	case Clear:
		items = []CartItem{}

	case Load:
		items = append([]CartItem{}, cmd.Cart.Items...)
	}

	return withTotals(items)
}

func removeLine(items []CartItem, lineID string) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != lineID {
			out = append(out, item)
		}
	}
	return out
}

func withTotals(items []CartItem) Cart {
	lineTotals := make([]int64, len(items))
	for i, item := range items {
		lineTotals[i] = item.LineTotal
	}
	totals := pricing.CartTotals(lineTotals)
	return Cart{Items: items, Subtotal: totals.Subtotal, Total: totals.Total}
}
