package routes

import (
	"net/http"
	"time"

	"blinkeyit_back_end/internal/handlers"
	"blinkeyit_back_end/internal/handlers/payement"
	"blinkeyit_back_end/internal/handlers/product"
	"blinkeyit_back_end/internal/handlers/user"
	"blinkeyit_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

func RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Blinkey It API is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Users
	u := api.Group("/user")
	{
		u.POST("/register", user.RegisterUser)
		u.POST("/login", middleware.LoginRateLimit(), user.Login)
		u.POST("/refresh-token", user.RefreshToken)
		u.PUT("/forgot-password", middleware.ForgotPasswordRateLimit(), user.ForgotPassword)
		u.PUT("/reset-password", user.ResetPassword)
		u.GET("/auth/:provider", handlers.BeginAuth)
		u.GET("/auth/:provider/callback", handlers.CallbackAuth)

		u.GET("/logout", middleware.AuthRequired(), user.Logout)
		u.GET("/user-details", middleware.AuthRequired(), user.UserDetails)
	}

	// Catalogue
	cat := api.Group("/category")
	{
		cat.GET("/get", product.GetCategories)
		cat.POST("/add-category", middleware.AuthRequired(), middleware.RequireAdmin, product.CreateCategory)
		cat.PUT("/update", middleware.AuthRequired(), middleware.RequireAdmin, product.UpdateCategory)
		cat.DELETE("/delete", middleware.AuthRequired(), middleware.RequireAdmin, product.DeleteCategory)
	}

	sub := api.Group("/subcategory")
	{
		sub.POST("/get", product.GetSubCategories)
		sub.POST("/create", middleware.AuthRequired(), middleware.RequireAdmin, product.CreateSubCategory)
		sub.PUT("/update", middleware.AuthRequired(), middleware.RequireAdmin, product.UpdateSubCategory)
		sub.DELETE("/delete", middleware.AuthRequired(), middleware.RequireAdmin, product.DeleteSubCategory)
	}

	prod := api.Group("/product")
	{
		prod.POST("/get", product.GetProducts)
		prod.POST("/get-product-by-category", product.GetProductsByCategory)
		prod.POST("/get-product-details", product.GetProductDetails)
		prod.GET("/search-product", product.SearchProduct)
		prod.POST("/create", middleware.AuthRequired(), middleware.RequireAdmin, product.CreateProduct)
		prod.PUT("/update-product-details", middleware.AuthRequired(), middleware.RequireAdmin, product.UpdateProductDetails)
		prod.DELETE("/delete-product", middleware.AuthRequired(), middleware.RequireAdmin, product.DeleteProduct)
	}

	// Panier : toutes les routes exigent un user authentifié
	cart := api.Group("/cart")
	cart.Use(middleware.AuthRequired())
	{
		cart.POST("/create", middleware.CartRateLimit(), user.AddToCartItem)
		cart.GET("/get", user.GetCartItem)
		cart.PUT("/update-qty", user.UpdateCartItemQty)
		cart.DELETE("/delete-cart-item", user.DeleteCartItem)
		cart.GET("/ws", user.CartWebSocket)
	}

	// Adresses
	addr := api.Group("/address")
	addr.Use(middleware.AuthRequired())
	{
		addr.POST("/create", user.CreateAddress)
		addr.GET("/get", user.GetAddresses)
		addr.DELETE("/disable", user.DisableAddress)
	}

	// Commandes
	order := api.Group("/order")
	order.Use(middleware.AuthRequired())
	{
		order.GET("/order-list", user.GetMyOrders)
		order.POST("/cash-on-delivery", user.CashOnDelivery)
	}

	// Paiement — le webhook Stripe est hors auth (signé par Stripe)
	pay := api.Group("/payment")
	{
		pay.POST("/webhook", payement.StripeWebhook)
		pay.POST("/checkout", middleware.AuthRequired(), payement.CreateCheckoutSession)
		pay.POST("/verify", middleware.AuthRequired(), payement.VerifyPayment)
	}

	// Fichiers
	file := api.Group("/file")
	file.Use(middleware.AuthRequired(), middleware.RequireAdmin, middleware.UploadRateLimit())
	{
		file.POST("/upload", handlers.UploadImage)
	}
}
