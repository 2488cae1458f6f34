// internal/domain/order/entity.go
package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ohana-chilli/storefront/internal/domain/cart"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var statusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Pendiente",
	OrderStatusConfirmed: "Confirmado",
	OrderStatusPreparing: "Preparando",
	OrderStatusReady:     "Listo",
	OrderStatusDelivered: "Entregado",
	OrderStatusCancelled: "Cancelado",
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the status as shown to staff
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// OrderType is how the customer receives the order
type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

// Valid reports whether t is a known order type
func (t OrderType) Valid() bool {
	return t == OrderTypePickup || t == OrderTypeDelivery
}

// Label returns the order type as written in customer messages
func (t OrderType) Label() string {
	if t == OrderTypeDelivery {
		return "Entrega a domicilio"
	}
	return "Recoger en sucursal"
}

// LineItems is the serialized cart stored with an order as JSONB
type LineItems []cart.CartItem

// Value implements driver.Valuer
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *LineItems) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for order items: %T", value)
	}
	return json.Unmarshal(data, l)
}

// Order is the durable record of a placed order
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	CustomerName  string      `gorm:"not null;size:100" json:"customer_name"`
	CustomerPhone string      `gorm:"not null;size:30" json:"customer_phone"`
	OrderType     OrderType   `gorm:"not null;size:20;index" json:"order_type"`
	Address       string      `gorm:"type:text" json:"address,omitempty"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`
	Items         LineItems   `gorm:"type:jsonb;not null" json:"items"`
	Subtotal      int64       `gorm:"not null" json:"subtotal"`
	Total         int64       `gorm:"not null" json:"total"`
	Status        OrderStatus `gorm:"not null;size:20;index" json:"status"`
	WhatsAppSent  bool        `gorm:"column:whatsapp_sent" json:"whatsapp_sent"`
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	StatusLabel    string `gorm:"-" json:"status_label"`
	OrderTypeLabel string `gorm:"-" json:"order_type_label"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// New builds a pending order from a cart snapshot. The message handoff is
// the primary fulfillment signal, so orders are recorded as already sent.
func New(customerName, customerPhone string, orderType OrderType, address, notes string, c cart.Cart) *Order {
	o := &Order{
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		OrderType:     orderType,
		Address:       address,
		Notes:         notes,
		Items:         append(LineItems{}, c.Items...),
		Subtotal:      c.Subtotal,
		Total:         c.Total,
		Status:        OrderStatusPending,
		WhatsAppSent:  true,
	}
	o.fillLabels()
	return o
}

// GenerateOrderNumber formats the order number from the creation date and id
func (o *Order) GenerateOrderNumber(now time.Time) string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", now.Format("20060102"), o.ID)
}

// AfterFind fills the display labels
func (o *Order) AfterFind(tx *gorm.DB) error {
	o.fillLabels()
	return nil
}

func (o *Order) fillLabels() {
	o.StatusLabel = o.Status.Label()
	o.OrderTypeLabel = o.OrderType.Label()
}
