// internal/domain/order/repository.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when no order has the requested id
var ErrOrderNotFound = errors.New("order not found")

// Submitter accepts finalized orders
type Submitter interface {
	Submit(ctx context.Context, o *Order) error
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page      int         `form:"page,default=1" binding:"min=1"`
	Limit     int         `form:"limit,default=20" binding:"min=1,max=100"`
	Status    OrderStatus `form:"status"`
	OrderType OrderType   `form:"order_type"`
}

// ListResponse represents an order page
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Repository stores orders in Postgres
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new order repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Submit inserts o and assigns its id and order number
func (r *Repository) Submit(ctx context.Context, o *Order) error {
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	// The number embeds the id, so a unique placeholder holds the column
	// until the insert returns.
	o.OrderNumber = "TMP-" + uuid.NewString()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		number := o.GenerateOrderNumber(r.now())
		if err := tx.Model(o).Update("order_number", number).Error; err != nil {
			return fmt.Errorf("failed to update order number: %w", err)
		}
		o.OrderNumber = number
		return nil
	})
	if err != nil {
		return err
	}

	o.fillLabels()
	return nil
}

// List returns orders newest first
func (r *Repository) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&Order{})
		if req.Status != "" {
			query = query.Where("status = ?", req.Status)
		}
		if req.OrderType != "" {
			query = query.Where("order_type = ?", req.OrderType)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	orders := []Order{}
	offset := (req.Page - 1) * req.Limit
	if err := filtered().Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// Get retrieves a single order by id
func (r *Repository) Get(ctx context.Context, id uint) (*Order, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}
