// internal/interfaces/http/handlers/order.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ohana-chilli/storefront/internal/domain/order"
)

// OrderReader is the staff view of the order store
type OrderReader interface {
	List(ctx context.Context, req order.ListRequest) (*order.ListResponse, error)
	Get(ctx context.Context, id uint) (*order.Order, error)
}

// OrderHandler serves the staff order list
type OrderHandler struct {
	orders OrderReader
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderReader) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GetOrders handles GET /staff/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order status",
		})
		return
	}
	if req.OrderType != "" && !req.OrderType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order type",
		})
		return
	}

	response, err := h.orders.List(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// GetOrder handles GET /staff/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orders.Get(c.Request.Context(), uint(orderID))
	if errors.Is(err, order.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	} else if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}
