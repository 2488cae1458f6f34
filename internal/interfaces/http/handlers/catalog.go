// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ohana-chilli/storefront/internal/domain/catalog"
)

// CatalogHandler serves the read-only menu
type CatalogHandler struct {
	store catalog.Store
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store catalog.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// GetCategories handles GET /catalog/categories?brand=
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	brand := catalog.Brand(c.Query("brand"))
	if !brand.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid brand",
			"details": "brand must be ohana or chilli",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data": gin.H{
			"categories": h.store.CategoriesByBrand(brand),
			"beverages":  h.store.BeverageCategories(),
		},
	})
}

// GetProducts handles GET /catalog/products?brand=&category=
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	var products []catalog.Product
	if category := c.Query("category"); category != "" {
		products = h.store.ProductsByCategory(category)
	} else {
		brand := catalog.Brand(c.Query("brand"))
		if !brand.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid query parameters",
				"details": "brand or category is required",
			})
			return
		}
		products = h.store.ProductsByBrand(brand)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetFeaturedProducts handles GET /catalog/products/featured
func (h *CatalogHandler) GetFeaturedProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Featured products retrieved successfully",
		"data":    h.store.FeaturedProducts(),
	})
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, ok := h.store.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": gin.H{
			"product":   product,
			"modifiers": h.store.ModifiersForProduct(product.ID),
		},
	})
}

// GetIngredients handles GET /catalog/ingredients?type=&q=
func (h *CatalogHandler) GetIngredients(c *gin.Context) {
	t := catalog.IngredientType(c.Query("type"))
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ingredient type",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ingredients retrieved successfully",
		"data":    catalog.FilterByName(h.store.IngredientsByType(t), c.Query("q")),
	})
}

// GetSizes handles GET /catalog/sizes
func (h *CatalogHandler) GetSizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Bowl sizes retrieved successfully",
		"data":    h.store.SizeRules(),
	})
}
