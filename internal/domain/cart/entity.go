// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"fmt"

	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/domain/pricing"
)

// ErrInvalidCart is returned when a cart value breaks its invariants
var ErrInvalidCart = errors.New("invalid cart")

// CustomBowlName is the display name of a custom bowl line
const CustomBowlName = "Bowl Personalizado"

// Kind tells what a cart line holds
type Kind string

const (
	KindProduct    Kind = "product"
	KindCustomBowl Kind = "custom-bowl"
)

// CartItem is one purchasable line. Exactly one of Product and CustomBowl is
// set, matching Kind.
type CartItem struct {
	ID         string              `json:"id"`
	Brand      catalog.Brand       `json:"brand"`
	Kind       Kind                `json:"kind"`
	Product    *catalog.Product    `json:"product,omitempty"`
	CustomBowl *catalog.CustomBowl `json:"custom_bowl,omitempty"`
	Quantity   int                 `json:"quantity"`
	Notes      string              `json:"notes,omitempty"`
	UnitPrice  int64               `json:"unit_price"`
	LineTotal  int64               `json:"line_total"`
}

// Name returns the display name of the line
func (i CartItem) Name() string {
	if i.Kind == KindProduct && i.Product != nil {
		return i.Product.Name
	}
	return CustomBowlName
}

// Cart is the ordered set of lines and its totals
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Total    int64      `json:"total"`
}

// NewCart returns an empty cart
func NewCart() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the sum of line quantities, not the number of lines
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// ItemsByBrand returns the lines of one brand in cart order
func (c Cart) ItemsByBrand(brand catalog.Brand) []CartItem {
	items := []CartItem{}
	for _, item := range c.Items {
		if item.Brand == brand {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks every invariant a stored cart must satisfy
func (c Cart) Validate() error {
	seen := make(map[string]struct{}, len(c.Items))
	lineTotals := make([]int64, 0, len(c.Items))

	for i, item := range c.Items {
		if item.ID == "" {
			return fmt.Errorf("%w: line %d has no id", ErrInvalidCart, i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate line id %s", ErrInvalidCart, item.ID)
		}
		seen[item.ID] = struct{}{}

		if !item.Brand.Valid() {
			return fmt.Errorf("%w: line %s has unknown brand %q", ErrInvalidCart, item.ID, item.Brand)
		}
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return fmt.Errorf("%w: line %s has quantity %d", ErrInvalidCart, item.ID, item.Quantity)
		}

		switch item.Kind {
		case KindProduct:
			if item.Product == nil || item.CustomBowl != nil {
				return fmt.Errorf("%w: product line %s has wrong payload", ErrInvalidCart, item.ID)
			}
			if item.UnitPrice != pricing.CatalogProduct(*item.Product) {
				return fmt.Errorf("%w: line %s unit price drifted", ErrInvalidCart, item.ID)
			}
		case KindCustomBowl:
			if item.CustomBowl == nil || item.Product != nil {
				return fmt.Errorf("%w: bowl line %s has wrong payload", ErrInvalidCart, item.ID)
			}
			if err := item.CustomBowl.Validate(); err != nil {
				return fmt.Errorf("%w: line %s: %v", ErrInvalidCart, item.ID, err)
			}
			if item.UnitPrice != pricing.CustomBowl(*item.CustomBowl) {
				return fmt.Errorf("%w: line %s unit price drifted", ErrInvalidCart, item.ID)
			}
		default:
			return fmt.Errorf("%w: line %s has unknown kind %q", ErrInvalidCart, item.ID, item.Kind)
		}

		if item.LineTotal != pricing.LineTotal(item.UnitPrice, item.Quantity) {
			return fmt.Errorf("%w: line %s total drifted", ErrInvalidCart, item.ID)
		}
		lineTotals = append(lineTotals, item.LineTotal)
	}

	totals := pricing.CartTotals(lineTotals)
	if c.Subtotal != totals.Subtotal || c.Total != totals.Total {
		return fmt.Errorf("%w: totals drifted", ErrInvalidCart)
	}
	return nil
}
