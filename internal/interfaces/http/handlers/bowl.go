// internal/interfaces/http/handlers/bowl.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ohana-chilli/storefront/internal/domain/bowl"
	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
)

// ChooseSizeRequest represents the size step payload
type ChooseSizeRequest struct {
	Size catalog.SizeKey `json:"size" binding:"required"`
}

// SetNotesRequest represents the summary notes payload
type SetNotesRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// BowlHandler drives the build-your-own-bowl wizard
type BowlHandler struct {
	bowlService *bowl.Service
	cartService *cart.Service
	sessions    Sessions
}

// NewBowlHandler creates a new bowl handler
func NewBowlHandler(bowlService *bowl.Service, cartService *cart.Service, sessions Sessions) *BowlHandler {
	return &BowlHandler{
		bowlService: bowlService,
		cartService: cartService,
		sessions:    sessions,
	}
}

// GetBowl handles GET /bowl[?q=]. The query filters the active step's
// candidates and is kept until the step changes.
func (h *BowlHandler) GetBowl(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	var (
		b   *bowl.Builder
		err error
	)
	if query, ok := c.GetQuery("q"); ok {
		b, _, err = h.bowlService.Update(c.Request.Context(), sessionID, func(b *bowl.Builder) bool {
			b.SetSearch(query)
			return true
		})
	} else {
		b, err = h.bowlService.Get(c.Request.Context(), sessionID)
	}
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bowl retrieved successfully",
		"data":    b.View(),
	})
}

// ChooseSize handles POST /bowl/size
func (h *BowlHandler) ChooseSize(c *gin.Context) {
	var req ChooseSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	rule, ok := h.bowlService.Catalog().SizeRule(req.Size)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Size not found",
		})
		return
	}

	h.transition(c, "Size selected", func(b *bowl.Builder) bool {
		return b.ChooseSize(rule)
	})
}

// ToggleIngredient handles POST /bowl/ingredients/:id/toggle
func (h *BowlHandler) ToggleIngredient(c *gin.Context) {
	ing, ok := h.bowlService.Catalog().Ingredient(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ingredient not found",
		})
		return
	}

	h.transition(c, "Ingredient toggled", func(b *bowl.Builder) bool {
		return b.Toggle(ing)
	})
}

// Advance handles POST /bowl/advance
func (h *BowlHandler) Advance(c *gin.Context) {
	h.transition(c, "Moved to next step", (*bowl.Builder).Advance)
}

// Retreat handles POST /bowl/retreat
func (h *BowlHandler) Retreat(c *gin.Context) {
	h.transition(c, "Moved to previous step", (*bowl.Builder).Retreat)
}

// SetNotes handles PUT /bowl/notes
func (h *BowlHandler) SetNotes(c *gin.Context) {
	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.transition(c, "Notes updated", func(b *bowl.Builder) bool {
		return b.SetNotes(req.Notes)
	})
}

// Submit handles POST /bowl/submit. The finished bowl becomes a new cart
// line and the wizard starts over.
func (h *BowlHandler) Submit(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)
	ctx := c.Request.Context()

	var (
		b        *bowl.Builder
		accepted bool
		snapshot cart.Cart
	)
	err := h.cartService.Mutate(ctx, sessionID, func(e *cart.Engine) error {
		var err error
		b, accepted, err = h.bowlService.Submit(ctx, sessionID, e)
		snapshot = e.Snapshot()
		return err
	})
	if errors.Is(err, catalog.ErrIncompleteBowl) && b != nil {
		h.rejected(c, b)
		return
	}
	if err != nil {
		h.storeError(c, err)
		return
	}

	if !accepted {
		h.rejected(c, b)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bowl added to cart successfully",
		"data": gin.H{
			"bowl": b.View(),
			"cart": snapshot,
		},
	})
}

// Reset handles DELETE /bowl
func (h *BowlHandler) Reset(c *gin.Context) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	if err := h.bowlService.Reset(c.Request.Context(), sessionID); err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bowl reset successfully",
		"data":    bowl.NewBuilder(h.bowlService.Catalog()).View(),
	})
}

func (h *BowlHandler) transition(c *gin.Context, message string, fn func(b *bowl.Builder) bool) {
	sessionID := h.sessions.getOrCreateSessionID(c)

	b, accepted, err := h.bowlService.Update(c.Request.Context(), sessionID, fn)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !accepted {
		h.rejected(c, b)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    b.View(),
	})
}

// rejected answers a transition the current state does not allow. The
// configuration is unchanged and returned so the client can resync.
func (h *BowlHandler) rejected(c *gin.Context, b *bowl.Builder) {
	c.JSON(http.StatusConflict, gin.H{
		"error": "Action not available in the current step",
		"data":  b.View(),
	})
}

func (h *BowlHandler) storeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Failed to update bowl",
	})
}
