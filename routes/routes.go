package routes

import (
	"restaurant-api/config"
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Menu browsing (no auth needed)
		public.GET("/products", h.ListProducts)
		public.GET("/products/:id", h.GetProduct)
		public.GET("/products/top-selling", h.GetTopSellingProducts)

		// Floor plan
		public.GET("/tables", h.ListTables)

		// Walk-in and phone reservations come in unauthenticated
		public.POST("/reservations", h.CreateReservation)
		public.GET("/reservations", h.ListReservations)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)
		auth.POST("/auth/verify-email", h.VerifyEmail)

		// Orders
		auth.GET("/orders", h.ListOrders)
		auth.POST("/orders", h.CreateOrder)
		auth.GET("/orders/user", h.GetUserOrders)
		auth.GET("/orders/:id", h.GetOrder)
		auth.PUT("/orders/:id", h.UpdateOrder)
		auth.DELETE("/orders/:id", h.DeleteOrder)

		// Reservation management
		auth.PUT("/reservations/:id", h.UpdateReservation)
		auth.DELETE("/reservations/:id", h.DeleteReservation)
	}

	// ── Kitchen routes ─────────────────────────────────────────────
	kitchen := r.Group("/api/kitchen")
	kitchen.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.RoleRequired(models.RoleKitchen, models.RoleAdmin))
	{
		kitchen.GET("/orders", h.GetKitchenOrders)
		kitchen.PUT("/orders/:id", h.UpdateKitchenOrderStatus)
		kitchen.GET("/orders/pending/count", h.GetPendingOrdersCount)
	}

	// ── Waiter routes ──────────────────────────────────────────────
	waiter := r.Group("/api/waiter")
	waiter.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.RoleRequired(models.RoleWaiter, models.RoleAdmin))
	{
		waiter.GET("/orders", h.GetWaiterOrders)
		waiter.POST("/orders", h.CreateWaiterOrder)
		waiter.PUT("/orders/:id/pay", h.PayOrder)
		waiter.GET("/tables", h.GetFreeTables)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		// User management
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users", h.DeleteUser)

		// Floor plan management
		admin.POST("/tables", h.CreateTable)
		admin.PUT("/tables/:id", h.UpdateTable)
		admin.DELETE("/tables/:id", h.DeleteTable)

		// Catalog management
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.GET("/products/:id/ingredients", h.GetProductIngredients)
		admin.POST("/products/:id/ingredients", h.SetProductIngredients)

		// Inventory
		admin.GET("/ingredients", h.ListIngredients)
		admin.POST("/ingredients", h.CreateIngredient)
		admin.GET("/ingredients/low-stock", h.ListLowStockIngredients)
		admin.PUT("/ingredients/:id", h.UpdateIngredient)
		admin.DELETE("/ingredients/:id", h.DeleteIngredient)

		// Analytics
		admin.GET("/analytics/sales", h.GetSalesAnalytics)
		admin.GET("/analytics/stats", h.GetStats)
	}
}
