package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohana-chilli/storefront/internal/config"
	"github.com/ohana-chilli/storefront/internal/domain/bowl"
	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/domain/checkout"
	"github.com/ohana-chilli/storefront/internal/domain/order"
	"github.com/ohana-chilli/storefront/internal/interfaces/http/middleware"
	"github.com/ohana-chilli/storefront/internal/interfaces/http/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryOrders struct {
	mu     sync.Mutex
	err    error
	orders []*order.Order
}

func (m *memoryOrders) Submit(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	o.ID = uint(len(m.orders) + 1)
	o.OrderNumber = o.GenerateOrderNumber(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	m.orders = append(m.orders, o)
	return nil
}

func (m *memoryOrders) List(ctx context.Context, req order.ListRequest) (*order.ListResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := &order.ListResponse{Orders: []order.Order{}}
	for i := len(m.orders) - 1; i >= 0; i-- {
		o := m.orders[i]
		if req.Status != "" && o.Status != req.Status {
			continue
		}
		resp.Orders = append(resp.Orders, *o)
	}
	resp.Pagination = order.Pagination{Page: req.Page, Limit: req.Limit, Total: int64(len(resp.Orders)), TotalPages: 1}
	return resp, nil
}

func (m *memoryOrders) Get(ctx context.Context, id uint) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == 0 || int(id) > len(m.orders) {
		return nil, order.ErrOrderNotFound
	}
	return m.orders[id-1], nil
}

type testEnv struct {
	server *Server
	orders *memoryOrders
	checks map[string]HealthCheck
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger, _ := test.NewNullLogger()

	cfg := &config.Config{
		App:    config.AppConfig{Version: "test", Environment: "test"},
		Server: config.ServerConfig{Port: "0", RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			StaffAPIKey:        "staff-key",
		},
		Storefront: config.StorefrontConfig{
			WhatsAppNumber: "573001234567",
			CartTTL:        time.Hour,
			BowlTTL:        time.Hour,
			SubmitTimeout:  time.Second,
			SubmitWait:     time.Second,
			SessionTTL:     time.Hour,
		},
	}

	store := catalog.NewDefaultStore()
	carts := cart.NewService(store, cart.NewRedisStore(client, cfg.Storefront.CartTTL), logger)
	bowls := bowl.NewService(store, bowl.NewRedisStore(client, cfg.Storefront.BowlTTL), logger)
	orders := &memoryOrders{}
	env := &testEnv{orders: orders, checks: map[string]HealthCheck{}}

	env.server = NewServer(cfg, logger, routes.Services{
		Catalog:  store,
		Cart:     carts,
		Bowl:     bowls,
		Checkout: checkout.NewService(carts, orders, cfg.Storefront, logger),
		Orders:   orders,
	}, client, env.checks)
	return env
}

type envelope struct {
	Message     string            `json:"message"`
	Error       string            `json:"error"`
	Data        json.RawMessage   `json:"data"`
	FieldErrors map[string]string `json:"field_errors"`
}

// browser keeps the session cookie between requests
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
	header  map[string]string
}

func (e *testEnv) browser(t *testing.T) *browser {
	return &browser{t: t, handler: e.server.Handler(), header: map[string]string{}}
}

func (b *browser) do(method, path string, body interface{}) (int, envelope) {
	b.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range b.header {
		req.Header.Set(k, v)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		b.cookies = cookies
	}

	var env envelope
	require.NoError(b.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	b := env.browser(t)

	code, _ := b.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)

	env.checks["database"] = func() error { return errors.New("down") }
	code, resp := b.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "database check failed", resp.Error)

	code, _ = b.do(http.MethodGet, "/api/v1/ready", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCatalogRoutes(t *testing.T) {
	b := newTestEnv(t).browser(t)

	code, resp := b.do(http.MethodGet, "/api/v1/catalog/products?brand=ohana", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]catalog.Product](t, resp.Data), 6)

	code, resp = b.do(http.MethodGet, "/api/v1/catalog/products?category=beverages-juices", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]catalog.Product](t, resp.Data), 4)

	code, _ = b.do(http.MethodGet, "/api/v1/catalog/products?brand=pizza", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = b.do(http.MethodGet, "/api/v1/catalog/products/featured", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]catalog.Product](t, resp.Data), 6)

	code, resp = b.do(http.MethodGet, "/api/v1/catalog/products/chilli-burger-1", nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[struct {
		Product   catalog.Product    `json:"product"`
		Modifiers []catalog.Modifier `json:"modifiers"`
	}](t, resp.Data)
	assert.Equal(t, int64(89), detail.Product.Price)
	assert.Len(t, detail.Modifiers, 3)

	code, _ = b.do(http.MethodGet, "/api/v1/catalog/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = b.do(http.MethodGet, "/api/v1/catalog/ingredients?type=protein&q=SALM", nil)
	require.Equal(t, http.StatusOK, code)
	proteins := decode[[]catalog.Ingredient](t, resp.Data)
	require.Len(t, proteins, 1)
	assert.Equal(t, "protein-salmon", proteins[0].ID)

	code, _ = b.do(http.MethodGet, "/api/v1/catalog/ingredients?type=dessert", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = b.do(http.MethodGet, "/api/v1/catalog/sizes", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]catalog.SizeRule](t, resp.Data), 3)

	code, _ = b.do(http.MethodGet, "/api/v1/catalog/categories?brand=chilli", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCartRoutes(t *testing.T) {
	b := newTestEnv(t).browser(t)

	code, resp := b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "chilli-burger-1", "quantity": 3})
	require.Equal(t, http.StatusOK, code)
	c := decode[cart.Cart](t, resp.Data)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(267), c.Total)
	require.Len(t, b.cookies, 1)
	assert.Equal(t, "session_id", b.cookies[0].Name)

	code, resp = b.do(http.MethodGet, "/api/v1/cart/count", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"count":3}`, string(resp.Data))

	code, resp = b.do(http.MethodGet, "/api/v1/cart?brand=ohana", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"brand":"ohana","items":[],"total":267}`, string(resp.Data))

	code, _ = b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "nope"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "bev-1", "quantity": -2})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "chilli-burger-1", "quantity": 1 << 60})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "chilli-burger-1", "quantity": 97})
	assert.Equal(t, http.StatusBadRequest, code, "merged line would exceed the cap")

	code, _ = b.do(http.MethodPut, "/api/v1/cart/items/"+c.Items[0].ID, gin.H{"quantity": 100})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = b.do(http.MethodPut, "/api/v1/cart/items/"+c.Items[0].ID, gin.H{"quantity": 1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(89), decode[cart.Cart](t, resp.Data).Total)

	code, _ = b.do(http.MethodPut, "/api/v1/cart/items/"+c.Items[0].ID, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code, "quantity is required")

	code, resp = b.do(http.MethodPut, "/api/v1/cart/items/"+c.Items[0].ID, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[cart.Cart](t, resp.Data).IsEmpty())

	b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "bev-1"})
	code, _ = b.do(http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, code)
	_, resp = b.do(http.MethodGet, "/api/v1/cart", nil)
	assert.True(t, decode[cart.Cart](t, resp.Data).IsEmpty())
}

func TestCartIsolatedPerSession(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := env.browser(t), env.browser(t)

	alice.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "ohana-1"})
	_, resp := bob.do(http.MethodGet, "/api/v1/cart", nil)
	assert.True(t, decode[cart.Cart](t, resp.Data).IsEmpty())
}

func TestBowlWizard(t *testing.T) {
	b := newTestEnv(t).browser(t)
	step := func(method, path string, body interface{}, wantCode int) bowl.View {
		t.Helper()
		code, resp := b.do(method, path, body)
		require.Equal(t, wantCode, code, resp.Error)
		return decode[bowl.View](t, resp.Data)
	}

	v := step(http.MethodGet, "/api/v1/bowl", nil, http.StatusOK)
	assert.Equal(t, "size", v.Step)
	assert.Len(t, v.Sizes, 3)
	assert.False(t, v.Actions["advance"])

	v = step(http.MethodPost, "/api/v1/bowl/advance", nil, http.StatusConflict)
	assert.Equal(t, "size", v.Step)

	code, _ := b.do(http.MethodPost, "/api/v1/bowl/size", gin.H{"size": "jumbo"})
	assert.Equal(t, http.StatusNotFound, code)

	v = step(http.MethodPost, "/api/v1/bowl/size", gin.H{"size": "medium"}, http.StatusOK)
	assert.Equal(t, int64(119), v.Price)

	step(http.MethodPost, "/api/v1/bowl/ingredients/base-rice/toggle", nil, http.StatusConflict)
	v = step(http.MethodPost, "/api/v1/bowl/advance", nil, http.StatusOK)
	assert.Equal(t, "bases", v.Step)

	step(http.MethodPost, "/api/v1/bowl/ingredients/base-rice/toggle", nil, http.StatusOK)
	v = step(http.MethodPost, "/api/v1/bowl/ingredients/base-quinoa/toggle", nil, http.StatusConflict)
	assert.Len(t, v.Bases, 1, "medium allows one base")
	step(http.MethodPost, "/api/v1/bowl/ingredients/protein-salmon/toggle", nil, http.StatusConflict)

	code, _ = b.do(http.MethodPost, "/api/v1/bowl/ingredients/unicorn/toggle", nil)
	assert.Equal(t, http.StatusNotFound, code)

	step(http.MethodPost, "/api/v1/bowl/advance", nil, http.StatusOK)
	v = step(http.MethodGet, "/api/v1/bowl?q=salm", nil, http.StatusOK)
	require.Len(t, v.Candidates, 1)
	assert.Equal(t, "salm", v.Search)
	v = step(http.MethodPost, "/api/v1/bowl/ingredients/protein-salmon/toggle", nil, http.StatusOK)
	assert.Equal(t, int64(144), v.Price)

	v = step(http.MethodPost, "/api/v1/bowl/advance", nil, http.StatusOK)
	assert.Equal(t, "acompanantes", v.Step)
	assert.Empty(t, v.Search, "advancing clears the search")
	step(http.MethodPost, "/api/v1/bowl/ingredients/acc-avocado/toggle", nil, http.StatusOK)
	step(http.MethodPost, "/api/v1/bowl/ingredients/acc-mango/toggle", nil, http.StatusOK)

	step(http.MethodPut, "/api/v1/bowl/notes", gin.H{"notes": "early"}, http.StatusConflict)
	step(http.MethodPost, "/api/v1/bowl/submit", nil, http.StatusConflict)

	v = step(http.MethodPost, "/api/v1/bowl/advance", nil, http.StatusOK)
	assert.Equal(t, "summary", v.Step)
	assert.True(t, v.Actions["submit"])
	v = step(http.MethodPut, "/api/v1/bowl/notes", gin.H{"notes": "sin sésamo"}, http.StatusOK)
	assert.Equal(t, "sin sésamo", v.Notes)

	code, resp := b.do(http.MethodPost, "/api/v1/bowl/submit", nil)
	require.Equal(t, http.StatusOK, code, resp.Error)
	submitted := decode[struct {
		Bowl bowl.View `json:"bowl"`
		Cart cart.Cart `json:"cart"`
	}](t, resp.Data)
	assert.Equal(t, "size", submitted.Bowl.Step)
	require.Len(t, submitted.Cart.Items, 1)
	line := submitted.Cart.Items[0]
	assert.Equal(t, cart.KindCustomBowl, line.Kind)
	assert.Equal(t, int64(144), line.LineTotal)
	assert.Equal(t, "sin sésamo", line.Notes)

	v = step(http.MethodGet, "/api/v1/bowl", nil, http.StatusOK)
	assert.Equal(t, "size", v.Step)
	assert.Nil(t, v.Size)
}

func TestBowlReset(t *testing.T) {
	b := newTestEnv(t).browser(t)

	b.do(http.MethodPost, "/api/v1/bowl/size", gin.H{"size": "large"})
	code, resp := b.do(http.MethodDelete, "/api/v1/bowl", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, decode[bowl.View](t, resp.Data).Size)

	_, resp = b.do(http.MethodGet, "/api/v1/bowl", nil)
	assert.Nil(t, decode[bowl.View](t, resp.Data).Size)
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	b := env.browser(t)
	form := gin.H{"name": "Ana", "phone": "3001234567", "order_type": "delivery", "address": "Calle 10 # 4-20"}

	code, resp := b.do(http.MethodPost, "/api/v1/checkout", form)
	assert.Equal(t, http.StatusBadRequest, code, "empty cart")

	b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "chilli-burger-1", "quantity": 2})

	code, resp = b.do(http.MethodPost, "/api/v1/checkout", gin.H{"name": "A", "phone": "12", "order_type": "delivery"})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, map[string]string{
		"name":    "El nombre debe tener al menos 2 caracteres",
		"phone":   "Ingresa un número de teléfono válido",
		"address": "La dirección es requerida para entregas a domicilio",
	}, resp.FieldErrors)

	code, resp = b.do(http.MethodPost, "/api/v1/checkout", form)
	require.Equal(t, http.StatusCreated, code, resp.Error)
	data := decode[struct {
		Order   order.Order `json:"order"`
		Message string      `json:"whatsapp_message"`
		URL     string      `json:"whatsapp_url"`
		Saved   bool        `json:"saved"`
		Warning string      `json:"warning"`
	}](t, resp.Data)
	assert.True(t, data.Saved)
	assert.Empty(t, data.Warning)
	assert.Equal(t, "ORD-20260314-00001", data.Order.OrderNumber)
	assert.Equal(t, int64(178), data.Order.Total)
	assert.True(t, strings.HasPrefix(data.URL, "https://wa.me/573001234567?text="))
	assert.Contains(t, data.Message, "🏠 *Dirección:* Calle 10 # 4-20")

	_, resp = b.do(http.MethodGet, "/api/v1/cart/count", nil)
	assert.JSONEq(t, `{"count":0}`, string(resp.Data))
}

func TestCheckout_SaveFailureWarns(t *testing.T) {
	env := newTestEnv(t)
	env.orders.err = errors.New("db down")
	b := env.browser(t)

	b.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "ohana-1"})
	code, resp := b.do(http.MethodPost, "/api/v1/checkout", gin.H{"name": "Luis", "phone": "+57 300 123 4567", "order_type": "pickup"})
	require.Equal(t, http.StatusCreated, code)

	data := decode[map[string]interface{}](t, resp.Data)
	assert.Equal(t, false, data["saved"])
	assert.Contains(t, data["warning"], "Error al guardar el pedido")
	assert.NotEmpty(t, data["whatsapp_url"])
}

func TestStaffOrders(t *testing.T) {
	env := newTestEnv(t)
	customer := env.browser(t)
	customer.do(http.MethodPost, "/api/v1/cart/products", gin.H{"product_id": "ohana-1"})
	code, _ := customer.do(http.MethodPost, "/api/v1/checkout", gin.H{"name": "Luis", "phone": "3001234567", "order_type": "pickup"})
	require.Equal(t, http.StatusCreated, code)

	staff := env.browser(t)
	code, _ = staff.do(http.MethodGet, "/api/v1/staff/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	staff.header[middleware.StaffKeyHeader] = "staff-key"
	code, resp := staff.do(http.MethodGet, "/api/v1/staff/orders?status=pending", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[order.ListResponse](t, resp.Data)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "Luis", list.Orders[0].CustomerName)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Equal(t, 20, list.Pagination.Limit)

	code, _ = staff.do(http.MethodGet, "/api/v1/staff/orders?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = staff.do(http.MethodGet, "/api/v1/staff/orders?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = staff.do(http.MethodGet, "/api/v1/staff/orders/1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Recoger en sucursal", decode[order.Order](t, resp.Data).OrderTypeLabel)

	code, _ = staff.do(http.MethodGet, "/api/v1/staff/orders/9", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = staff.do(http.MethodGet, "/api/v1/staff/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
