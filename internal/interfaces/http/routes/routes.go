// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ohana-chilli/storefront/internal/config"
	"github.com/ohana-chilli/storefront/internal/domain/bowl"
	"github.com/ohana-chilli/storefront/internal/domain/cart"
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/interfaces/http/handlers"
	"github.com/ohana-chilli/storefront/internal/interfaces/http/middleware"
)

// Services bundles the domain services exposed over HTTP
type Services struct {
	Catalog  catalog.Store
	Cart     *cart.Service
	Bowl     *bowl.Service
	Checkout handlers.OrderPlacer
	Orders   handlers.OrderReader
}

// SetupCatalogRoutes sets up menu browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, svc Services) {
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)

	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/categories", catalogHandler.GetCategories)
		catalogGroup.GET("/products", catalogHandler.GetProducts)
		catalogGroup.GET("/products/featured", catalogHandler.GetFeaturedProducts)
		catalogGroup.GET("/products/:id", catalogHandler.GetProduct)
		catalogGroup.GET("/ingredients", catalogHandler.GetIngredients)
		catalogGroup.GET("/sizes", catalogHandler.GetSizes)
	}
}

// SetupCartRoutes sets up cart routes, keyed by the session cookie
func SetupCartRoutes(rg *gin.RouterGroup, svc Services, sessions handlers.Sessions) {
	cartHandler := handlers.NewCartHandler(svc.Cart, sessions)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/products", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// SetupBowlRoutes sets up the bowl wizard routes
func SetupBowlRoutes(rg *gin.RouterGroup, svc Services, sessions handlers.Sessions) {
	bowlHandler := handlers.NewBowlHandler(svc.Bowl, svc.Cart, sessions)

	bowlGroup := rg.Group("/bowl")
	{
		bowlGroup.GET("", bowlHandler.GetBowl)
		bowlGroup.POST("/size", bowlHandler.ChooseSize)
		bowlGroup.POST("/ingredients/:id/toggle", bowlHandler.ToggleIngredient)
		bowlGroup.POST("/advance", bowlHandler.Advance)
		bowlGroup.POST("/retreat", bowlHandler.Retreat)
		bowlGroup.PUT("/notes", bowlHandler.SetNotes)
		bowlGroup.POST("/submit", bowlHandler.Submit)
		bowlGroup.DELETE("", bowlHandler.Reset)
	}
}

// SetupCheckoutRoutes sets up order placement
func SetupCheckoutRoutes(rg *gin.RouterGroup, svc Services, sessions handlers.Sessions, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout, sessions, cfg.Storefront.SubmitWait)

	rg.POST("/checkout", checkoutHandler.PlaceOrder)
}

// SetupStaffRoutes sets up the staff order view
func SetupStaffRoutes(rg *gin.RouterGroup, svc Services, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(svc.Orders)

	staff := rg.Group("/staff")
	staff.Use(middleware.StaffOnly(cfg.Security.StaffAPIKey))
	{
		staff.GET("/orders", orderHandler.GetOrders)
		staff.GET("/orders/:id", orderHandler.GetOrder)
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, svc Services, cfg *config.Config) {
	sessions := handlers.NewSessions(cfg)

	SetupCatalogRoutes(rg, svc)
	SetupCartRoutes(rg, svc, sessions)
	SetupBowlRoutes(rg, svc, sessions)
	SetupCheckoutRoutes(rg, svc, sessions, cfg)
	SetupStaffRoutes(rg, svc, cfg)
}
