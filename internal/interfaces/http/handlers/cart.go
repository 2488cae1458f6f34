// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	sessions    Sessions
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, sessions Sessions) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		sessions:    sessions,
	}
}

// GetCart handles GET /cart[?brand=]
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	cartResponse, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	if raw := c.Query("brand"); raw != "" {
		brand := catalog.Brand(raw)
		if !brand.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid brand",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Cart retrieved successfully",
			"data": gin.H{
				"brand": brand,
				"items": cartResponse.ItemsByBrand(brand),
				"total": cartResponse.Total,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse,
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	count, err := h.cartService.GetCartItemCount(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get cart count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// AddToCart handles POST /cart/products
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.AddToCart(c.Request.Context(), sessionID, &req)
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	case errors.Is(err, cart.ErrCartUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Cart temporarily unavailable",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse,
	})
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity of zero or less
// removes the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	var req cart.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.UpdateCartItem(c.Request.Context(), sessionID, c.Param("id"), *req.Quantity)
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	case errors.Is(err, cart.ErrCartUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Cart temporarily unavailable",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	cartResponse, err := h.cartService.RemoveFromCart(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	if err := h.cartService.ClearCart(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    cart.NewCart(),
	})
}
