// internal/domain/cart/engine.go
package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ohana-chilli/storefront/internal/domain/catalog"
)

// MaxQuantity is the most units a single cart line may hold
const MaxQuantity = 99

// ErrInvalidQuantity is returned when a line quantity falls outside 1..MaxQuantity
var ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")

// Persister stores a cart snapshot after each mutation
type Persister interface {
	Persist(c Cart) error
}

// PersisterFunc adapts a function to Persister
type PersisterFunc func(c Cart) error

// Persist calls f(c)
func (f PersisterFunc) Persist(c Cart) error {
	return f(c)
}

// Engine owns one cart. Every mutation goes through Reduce and is followed
// by a best-effort persist; a failed persist is logged and the in-memory
// cart stays authoritative.
type Engine struct {
	cart      Cart
	persister Persister
	logger    logrus.FieldLogger
	newID     func() string
}

// NewEngine creates an engine over an empty cart. persister may be nil.
func NewEngine(persister Persister, logger logrus.FieldLogger) *Engine {
	return &Engine{
		cart:      NewCart(),
		persister: persister,
		logger:    logger,
		newID:     NewLineID,
	}
}

// AddCatalogProduct adds quantity units of product, merging with an existing
// line that has the same product and notes. The merged line may not exceed
// MaxQuantity.
func (e *Engine) AddCatalogProduct(product catalog.Product, quantity int, notes string) error {
	if quantity < 1 || quantity > MaxQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	for _, item := range e.cart.Items {
		if item.Kind == KindProduct && item.Product != nil && item.Product.ID == product.ID && item.Notes == notes {
			if item.Quantity+quantity > MaxQuantity {
				return fmt.Errorf("%w: line %s would hold %d", ErrInvalidQuantity, item.ID, item.Quantity+quantity)
			}
			break
		}
	}
	e.apply(AddProduct{LineID: e.lineID(), Product: product, Quantity: quantity, Notes: notes})
	return nil
}

// AddCustomBowl appends bowl as a new line. Incomplete bowls are rejected
// with catalog.ErrIncompleteBowl.
func (e *Engine) AddCustomBowl(bowl catalog.CustomBowl, notes string) error {
	if err := bowl.Validate(); err != nil {
		return err
	}
	e.apply(AddBowl{LineID: e.lineID(), Bowl: bowl, Notes: notes})
	return nil
}

// AcceptBowl lets the engine receive bowls straight from the bowl builder
func (e *Engine) AcceptBowl(bowl catalog.CustomBowl, notes string) error {
	return e.AddCustomBowl(bowl, notes)
}

// SetQuantity changes a line's quantity, removing it when quantity <= 0
func (e *Engine) SetQuantity(lineID string, quantity int) error {
	if quantity > MaxQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	e.apply(SetQuantity{LineID: lineID, Quantity: quantity})
	return nil
}

// RemoveLine drops a line if present
func (e *Engine) RemoveLine(lineID string) {
	e.apply(RemoveLine{LineID: lineID})
}

// Clear empties the cart
func (e *Engine) Clear() {
	e.apply(Clear{})
}

// HasLine reports whether lineID is in the cart
func (e *Engine) HasLine(lineID string) bool {
	for _, item := range e.cart.Items {
		if item.ID == lineID {
			return true
		}
	}
	return false
}

// Snapshot returns the current cart for persistence or display
func (e *Engine) Snapshot() Cart {
	return Cart{
		Items:    append([]CartItem{}, e.cart.Items...),
		Subtotal: e.cart.Subtotal,
		Total:    e.cart.Total,
	}
}

// ItemCount is the sum of all line quantities
func (e *Engine) ItemCount() int {
	return e.cart.ItemCount()
}

// ItemsByBrand returns the lines of one brand
func (e *Engine) ItemsByBrand(brand catalog.Brand) []CartItem {
	return e.cart.ItemsByBrand(brand)
}

// Load replaces the cart with c when c satisfies every cart invariant.
// Nothing is persisted.
func (e *Engine) Load(c Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.cart = Reduce(e.cart, Load{Cart: c})
	return nil
}

// Restore loads a JSON snapshot. Malformed or inconsistent data is discarded
// with a warning and the cart starts empty; it reports whether data was used.
func (e *Engine) Restore(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		e.logger.WithError(err).Warn("Discarding malformed cart snapshot")
		e.cart = NewCart()
		return false
	}
	if err := e.Load(c); err != nil {
		e.logger.WithError(err).Warn("Discarding inconsistent cart snapshot")
		e.cart = NewCart()
		return false
	}
	return true
}

func (e *Engine) apply(cmd Command) {
	e.cart = Reduce(e.cart, cmd)
	if e.persister == nil {
		return
	}
	if err := e.persister.Persist(e.Snapshot()); err != nil {
		e.logger.WithError(err).Warn("Failed to persist cart snapshot")
	}
}

// lineID returns a fresh id that no current line uses
func (e *Engine) lineID() string {
	for {
		id := e.newID()
		if !e.HasLine(id) {
			return id
		}
	}
}
