// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ohana-chilli/storefront/internal/config"
	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/order"
	"github.com/ohana-chilli/storefront/internal/pkg/messaging"
)

const defaultSubmitTimeout = 10 * time.Second

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart
var ErrEmptyCart = errors.New("cart is empty")

// SubmissionResult is the outcome of recording an order in the order store
type SubmissionResult struct {
	Order *order.Order
	Err   error
}

// Confirmation is what the customer gets back once checkout is complete.
// Submission delivers exactly one result and is never closed before it.
type Confirmation struct {
	Order      order.Order
	Message    string
	LaunchURL  string
	Submission <-chan SubmissionResult
}

// Service handles checkout business logic
type Service struct {
	carts   *cart.Service
	orders  order.Submitter
	number  string
	timeout time.Duration
	logger  logrus.FieldLogger
}

// NewService creates a new checkout service
func NewService(carts *cart.Service, orders order.Submitter, cfg config.StorefrontConfig, logger logrus.FieldLogger) *Service {
	timeout := cfg.SubmitTimeout
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	return &Service{
		carts:   carts,
		orders:  orders,
		number:  cfg.WhatsAppNumber,
		timeout: timeout,
		logger:  logger,
	}
}

// PlaceOrder validates the customer form, empties the session's cart and
// returns the message handoff. The order store submission runs in the
// background; its failure never fails checkout.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, info CustomerInfo) (*Confirmation, error) {
	info = info.Normalize()
	if err := info.Validate(); err != nil {
		return nil, err
	}

	var snapshot cart.Cart
	err := s.carts.Mutate(ctx, sessionID, func(e *cart.Engine) error {
		snapshot = e.Snapshot()
		if snapshot.IsEmpty() {
			return ErrEmptyCart
		}
		e.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	o := order.New(info.Name, info.Phone, info.OrderType, info.Address, info.Notes, snapshot)
	summary := *o

	message := messaging.FormatOrderSummary(messaging.Customer{
		Name:      info.Name,
		Phone:     info.Phone,
		OrderType: info.OrderType,
		Address:   info.Address,
		Notes:     info.Notes,
	}, snapshot)

	return &Confirmation{
		Order:      summary,
		Message:    message,
		LaunchURL:  messaging.LaunchURL(s.number, message),
		Submission: s.submit(sessionID, o),
	}, nil
}

func (s *Service) submit(sessionID string, o *order.Order) <-chan SubmissionResult {
	done := make(chan SubmissionResult, 1)
	logger := s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"total":      o.Total,
		"items":      len(o.Items),
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.orders.Submit(ctx, o); err != nil {
			logger.WithError(err).Error("Failed to save order")
			done <- SubmissionResult{Err: err}
			return
		}
		logger.WithField("order_number", o.OrderNumber).Info("Order saved")
		done <- SubmissionResult{Order: o}
	}()

	return done
}
