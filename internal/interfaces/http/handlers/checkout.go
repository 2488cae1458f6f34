// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/checkout"
)

const (
	orderSentMessage   = "¡Orden enviada! Te contactaremos pronto por WhatsApp"
	orderNotSavedAlert = "Error al guardar el pedido. Pero tu orden se enviará por WhatsApp igualmente"
)

// OrderPlacer places orders for a session
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, sessionID string, info checkout.CustomerInfo) (*checkout.Confirmation, error)
}

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService OrderPlacer
	sessions        Sessions
	submitWait      time.Duration
}

// NewCheckoutHandler creates a new checkout handler. submitWait bounds how
// long a response waits to learn whether the order was saved.
func NewCheckoutHandler(checkoutService OrderPlacer, sessions Sessions, submitWait time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		sessions:        sessions,
		submitWait:      submitWait,
	}
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	var info checkout.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	confirmation, err := h.checkoutService.PlaceOrder(c.Request.Context(), sessionID, info)
	var validationErr *checkout.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        "Checkout validation failed",
			"field_errors": validationErr.Fields,
		})
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Tu carrito está vacío",
		})
		return
	case errors.Is(err, cart.ErrCartUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Cart temporarily unavailable",
		})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	data := gin.H{
		"order":            confirmation.Order,
		"whatsapp_message": confirmation.Message,
		"whatsapp_url":     confirmation.LaunchURL,
		"saved":            false,
	}

	timer := time.NewTimer(h.submitWait)
	defer timer.Stop()
	select {
	case res := <-confirmation.Submission:
		if res.Err != nil {
			data["warning"] = orderNotSavedAlert
		} else {
			data["saved"] = true
			data["order"] = res.Order
		}
	case <-timer.C:
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": orderSentMessage,
		"data":    data,
	})
}
