// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/pkg/keylock"
)

var (
	ErrSessionRequired = errors.New("session ID required for cart")
	ErrProductNotFound = errors.New("product not found")
	ErrCartUnavailable = errors.New("cart store unavailable")
)

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99"`
	Notes     string `json:"notes" binding:"max=500"`
}

// UpdateCartItemRequest represents update cart item request. Zero or less
// removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=99"`
}

// Service maps sessions to cart engines backed by a SnapshotStore
type Service struct {
	catalog catalog.Store
	store   SnapshotStore
	locks   *keylock.Locker
	logger  logrus.FieldLogger
}

// NewService creates a new cart service
func NewService(store catalog.Store, snapshots SnapshotStore, logger logrus.FieldLogger) *Service {
	return &Service{
		catalog: store,
		store:   snapshots,
		locks:   keylock.New(),
		logger:  logger,
	}
}

// GetCart returns the session's cart, empty when nothing usable is stored
// or the store cannot be read. Reading never writes back.
func (s *Service) GetCart(ctx context.Context, sessionID string) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrSessionRequired
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	logger := s.logger.WithField("session_id", sessionID)
	data, err := s.store.Load(ctx, sessionID)
	if err != nil {
		logger.WithError(err).Warn("Failed to load cart snapshot, serving empty cart")
		return NewCart(), nil
	}

	engine := NewEngine(nil, logger)
	engine.Restore(data)
	return engine.Snapshot(), nil
}

// GetCartItemCount returns the sum of quantities in the session's cart
func (s *Service) GetCartItemCount(ctx context.Context, sessionID string) (int, error) {
	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.ItemCount(), nil
}

// AddToCart adds a catalog product to the session's cart
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (Cart, error) {
	product, ok := s.catalog.Product(req.ProductID)
	if !ok {
		return Cart{}, ErrProductNotFound
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var snapshot Cart
	err := s.Mutate(ctx, sessionID, func(e *Engine) error {
		if err := e.AddCatalogProduct(product, quantity, req.Notes); err != nil {
			return err
		}
		snapshot = e.Snapshot()
		return nil
	})
	return snapshot, err
}

// UpdateCartItem sets a line's quantity
func (s *Service) UpdateCartItem(ctx context.Context, sessionID, lineID string, quantity int) (Cart, error) {
	var snapshot Cart
	err := s.Mutate(ctx, sessionID, func(e *Engine) error {
		if err := e.SetQuantity(lineID, quantity); err != nil {
			return err
		}
		snapshot = e.Snapshot()
		return nil
	})
	return snapshot, err
}

// RemoveFromCart removes a line from the cart
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, lineID string) (Cart, error) {
	var snapshot Cart
	err := s.Mutate(ctx, sessionID, func(e *Engine) error {
		e.RemoveLine(lineID)
		snapshot = e.Snapshot()
		return nil
	})
	return snapshot, err
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	return s.Mutate(ctx, sessionID, func(e *Engine) error {
		e.Clear()
		return nil
	})
}

// Mutate loads the session's engine and runs fn while holding the session
// lock. Mutations fn makes are persisted by the engine as they happen. When
// the store cannot be read fn is not run, so a stored cart is never
// overwritten from an empty one.
func (s *Service) Mutate(ctx context.Context, sessionID string, fn func(e *Engine) error) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	data, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCartUnavailable, err)
	}

	logger := s.logger.WithField("session_id", sessionID)
	engine := NewEngine(PersisterFunc(func(c Cart) error {
		return s.store.Save(ctx, sessionID, c)
	}), logger)
	engine.Restore(data)

	return fn(engine)
}
