package routes

import (
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	// Public
	r.POST("/register", h.Register)
	r.POST("/login", middleware.LoginRateLimit(), h.Login)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)

	// Protected
	auth := r.Group("/", middleware.AuthRequired())
	auth.GET("/profile", h.Profile)
	auth.POST("/products", h.CreateProduct)
	auth.PUT("/products/:id", h.UpdateProduct)
	auth.DELETE("/products/:id", h.DeleteProduct)
	auth.POST("/cart", h.AddToCart)
	auth.GET("/cart", h.GetCart)
	auth.POST("/checkout", h.Checkout)
	auth.GET("/orders", h.GetOrders)
}
