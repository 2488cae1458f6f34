package checkout

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohana-chilli/storefront/internal/config"
	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/domain/order"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	err      error
	block    bool
	received []*order.Order
}

func (f *fakeSubmitter) Submit(ctx context.Context, o *order.Order) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	o.ID = uint(len(f.received) + 1)
	o.OrderNumber = o.GenerateOrderNumber(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	f.received = append(f.received, o)
	return nil
}

type fixture struct {
	svc    *Service
	carts  *cart.Service
	orders *fakeSubmitter
	hook   *test.Hook
	redis  *miniredis.Miniredis
}

func newFixture(t *testing.T, cfg config.StorefrontConfig) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger, hook := test.NewNullLogger()
	carts := cart.NewService(catalog.NewDefaultStore(), cart.NewRedisStore(client, time.Hour), logger)
	orders := &fakeSubmitter{}
	if cfg.WhatsAppNumber == "" {
		cfg.WhatsAppNumber = "573001234567"
	}
	return &fixture{
		svc:    NewService(carts, orders, cfg, logger),
		carts:  carts,
		orders: orders,
		hook:   hook,
		redis:  mr,
	}
}

func (f *fixture) fillCart(t *testing.T, sessionID string) {
	t.Helper()
	_, err := f.carts.AddToCart(context.Background(), sessionID, &cart.AddToCartRequest{ProductID: "chilli-burger-1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.carts.AddToCart(context.Background(), sessionID, &cart.AddToCartRequest{ProductID: "ohana-1"})
	require.NoError(t, err)
}

func waitResult(t *testing.T, c *Confirmation) SubmissionResult {
	t.Helper()
	select {
	case res := <-c.Submission:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("submission never reported")
		return SubmissionResult{}
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(t, config.StorefrontConfig{SubmitTimeout: time.Second})
	ctx := context.Background()
	f.fillCart(t, "s1")
	before, err := f.carts.GetCart(ctx, "s1")
	require.NoError(t, err)

	conf, err := f.svc.PlaceOrder(ctx, "s1", CustomerInfo{
		Name:      " Ana ",
		Phone:     "3001234567",
		OrderType: order.OrderTypePickup,
		Address:   "dropped",
		Notes:     "Sin picante",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", conf.Order.CustomerName)
	assert.Empty(t, conf.Order.Address)
	assert.Equal(t, order.OrderStatusPending, conf.Order.Status)
	assert.True(t, conf.Order.WhatsAppSent)
	assert.Equal(t, before.Total, conf.Order.Total)
	assert.Len(t, conf.Order.Items, 2)
	assert.Contains(t, conf.Message, "👤 *Cliente:* Ana")
	assert.Contains(t, conf.Message, "📝 *Notas:* Sin picante")

	link, err := url.Parse(conf.LaunchURL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", link.Host)
	assert.Equal(t, "/573001234567", link.Path)
	assert.Equal(t, conf.Message, link.Query().Get("text"))

	res := waitResult(t, conf)
	require.NoError(t, res.Err)
	assert.Equal(t, "ORD-20260314-00001", res.Order.OrderNumber)

	after, err := f.carts.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
}

func TestPlaceOrder_ValidationBlocksEverything(t *testing.T) {
	f := newFixture(t, config.StorefrontConfig{SubmitTimeout: time.Second})
	ctx := context.Background()
	f.fillCart(t, "s1")

	_, err := f.svc.PlaceOrder(ctx, "s1", CustomerInfo{
		Name:      "Ana",
		Phone:     "3001234567",
		OrderType: order.OrderTypeDelivery,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "address")

	c, err := f.carts.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ItemCount(), "cart untouched")
	assert.Empty(t, f.orders.received)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture(t, config.StorefrontConfig{SubmitTimeout: time.Second})

	_, err := f.svc.PlaceOrder(context.Background(), "s1", validCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_UnreadableCartIsNotEmpty(t *testing.T) {
	f := newFixture(t, config.StorefrontConfig{SubmitTimeout: time.Second})
	ctx := context.Background()
	f.fillCart(t, "s1")

	f.redis.SetError("LOADING Redis is loading the dataset in memory")
	_, err := f.svc.PlaceOrder(ctx, "s1", validCustomer())
	assert.ErrorIs(t, err, cart.ErrCartUnavailable)
	assert.NotErrorIs(t, err, ErrEmptyCart)
	f.redis.SetError("")

	c, err := f.carts.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ItemCount())
	assert.Empty(t, f.orders.received)
}

func TestPlaceOrder_SubmissionFailureIsNonFatal(t *testing.T) {
	f := newFixture(t, config.StorefrontConfig{SubmitTimeout: time.Second})
	f.orders.err = errors.New("connection refused")
	ctx := context.Background()
	f.fillCart(t, "s1")

	conf, err := f.svc.PlaceOrder(ctx, "s1", validCustomer())
	require.NoError(t, err)
	assert.NotEmpty(t, conf.LaunchURL)

	res := waitResult(t, conf)
	assert.EqualError(t, res.Err, "connection refused")

	after, err := f.carts.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, after.IsEmpty(), "cart cleared regardless")

	require.NotEmpty(t, f.hook.AllEntries())
	assert.Equal(t, logrus.ErrorLevel, f.hook.LastEntry().Level)
	assert.Equal(t, "Failed to save order", f.hook.LastEntry().Message)
}

func TestPlaceOrder_SubmissionTimesOut(t *testing.T) {
	f := newFixture(t, config.StorefrontConfig{SubmitTimeout: 50 * time.Millisecond})
	f.orders.block = true
	f.fillCart(t, "s1")

	conf, err := f.svc.PlaceOrder(context.Background(), "s1", validCustomer())
	require.NoError(t, err)

	res := waitResult(t, conf)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestPlaceOrder_SurvivesRequestCancellation(t *testing.T) {
	f := newFixture(t, config.StorefrontConfig{SubmitTimeout: time.Second})
	f.fillCart(t, "s1")

	ctx, cancel := context.WithCancel(context.Background())
	conf, err := f.svc.PlaceOrder(ctx, "s1", validCustomer())
	require.NoError(t, err)
	cancel()

	res := waitResult(t, conf)
	assert.NoError(t, res.Err)
}
