package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/middleware"
	"storefront-service/repository"
	"storefront-service/services"
)

// Register wires repositories, services, and controllers and registers all
// routes on the router.
func Register(r *gin.Engine, redisClient *redis.Client, cfg config.Config, logger *zap.Logger) {
	// mock backend stores
	productRepo := repository.NewMemoryProductRepository(cfg.MockLatency)
	orderRepo := repository.NewMemoryOrderRepository(cfg.MockLatency)
	userRepo := repository.NewMemoryUserRepository(cfg.MockLatency)

	// durable key-value stores
	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL, logger)
	checkoutRepo := repository.NewRedisCheckoutRepository(redisClient, cfg.CartTTL, logger)
	sessionRepo := repository.NewRedisSessionRepository(redisClient, logger)

	secret := []byte(cfg.JWTSecret)

	catalogService := services.NewCatalogService(productRepo, logger)
	cartService := services.NewCartService(cartRepo, productRepo, logger)
	orderService := services.NewOrderService(orderRepo, productRepo, logger)
	checkoutService := services.NewCheckoutService(checkoutRepo, cartService, orderService, logger)
	authService := services.NewAuthService(userRepo, sessionRepo, secret, cfg.TokenTTL, logger)

	productController := controllers.NewProductController(catalogService)
	cartController := controllers.NewCartController(cartService)
	checkoutController := controllers.NewCheckoutController(checkoutService)
	orderController := controllers.NewOrderController(orderService)
	authController := controllers.NewAuthController(authService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// public routes
	r.POST("/auth/register", authController.Register)
	r.POST("/auth/login", authController.Login)
	r.GET("/products", productController.GetProducts)
	r.GET("/products/:id", productController.GetProductByID)

	// authenticated routes
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(secret))
	{
		api.POST("/auth/logout", authController.Logout)
		api.GET("/auth/profile", authController.Profile)

		api.POST("/products/:id/reviews", productController.CreateReview)

		api.GET("/cart", cartController.GetCart)
		api.POST("/cart/items", cartController.AddItem)
		api.PUT("/cart/items/:product_id", cartController.UpdateQty)
		api.DELETE("/cart/items/:product_id", cartController.RemoveItem)
		api.DELETE("/cart", cartController.ClearCart)

		api.GET("/checkout", checkoutController.GetState)
		api.POST("/checkout/shipping", checkoutController.SubmitShipping)
		api.POST("/checkout/payment", checkoutController.SelectPayment)
		api.POST("/checkout/back", checkoutController.Back)
		api.POST("/checkout/submit", checkoutController.Submit)

		api.GET("/orders", orderController.GetMyOrders)
		api.GET("/orders/:id", orderController.GetOrder)
		api.PUT("/orders/:id/pay", orderController.MarkPaid)
	}

	// admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(secret), middleware.AdminOnly())
	{
		admin.GET("/orders", orderController.GetAllOrders)
		admin.PUT("/orders/:id/deliver", orderController.MarkDelivered)
	}
}
