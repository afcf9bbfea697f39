// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/expiryeaze/expiryeaze-backend/internal/config"
	"github.com/expiryeaze/expiryeaze-backend/internal/handlers"
	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/middleware"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
	"github.com/expiryeaze/expiryeaze-backend/internal/services"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

const version = "1.0.0"

// Initialize wires services and handlers onto a gin engine. Background work
// started here stops when ctx is done.
func Initialize(ctx context.Context, store *repository.Store, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	aggregator := services.NewRatingAggregator(store)

	authService := services.NewAuthService(store, cfg)
	productService := services.NewProductService(store)
	cartService := services.NewCartService(store)
	orderService := services.NewOrderService(store)
	reviewService := services.NewReviewService(store, aggregator)
	vendorService := services.NewVendorService(store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService, cfg.Reviews)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Rate limiters
	generalLimiter := middleware.PerSecond(cfg.RateLimit.GeneralPerSecond)
	authLimiter := middleware.PerMinute(cfg.RateLimit.AuthPerMinute)
	uploadLimiter := middleware.PerMinute(cfg.RateLimit.UploadPerMinute)
	for _, rl := range []*middleware.RateLimiter{generalLimiter, authLimiter, uploadLimiter} {
		go rl.Cleanup(ctx)
	}

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(generalLimiter.Middleware())
	api.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from ExpiryEaze Backend API!")
	})

	// API v1 routes
	v1 := api.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authLimiter.Middleware(), authHandler.Register)
			auth.POST("/login", authLimiter.Middleware(), authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetMe)
			auth.POST("/waitlist", authHandler.JoinWaitlist)
			auth.GET("/waitlist/check", authHandler.CheckWaitlist)

			// Legacy vendor profile paths
			auth.GET("/vendors/profile", middleware.AuthRequired(), vendorHandler.GetProfile)
			auth.PUT("/vendors/profile", middleware.AuthRequired(), vendorHandler.UpdateProfile)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("", cartHandler.AddToCart)
			cart.DELETE("", cartHandler.RemoveFromCart)
			cart.DELETE("/items", cartHandler.ClearCart)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
		}

		// Review routes
		reviews := v1.Group("/reviews")
		{
			reviews.GET("/vendor/:vendorId", reviewHandler.GetVendorReviews)

			protected := reviews.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", reviewHandler.CreateReview)
				protected.GET("", reviewHandler.GetAllReviews)
				protected.GET("/vendor/:vendorId/my-review", reviewHandler.GetMyReview)
				protected.PUT("/:id", reviewHandler.UpdateReview)
				protected.DELETE("/:id", reviewHandler.DeleteReview)
				protected.POST("/:id/helpful", reviewHandler.MarkHelpful)
			}
		}

		// Vendor routes
		vendors := v1.Group("/vendors")
		{
			vendors.GET("/all-with-products", vendorHandler.GetAllWithProducts)

			protected := vendors.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/profile", vendorHandler.GetProfile)
				protected.PUT("/profile", vendorHandler.UpdateProfile)
				protected.POST("/profile", vendorHandler.UpdateProfile)
				protected.POST("/medicine-auth", vendorHandler.MedicineAuth)
				protected.GET("/medicine-verification-status", vendorHandler.GetMedicineVerificationStatus)
			}
		}

		// Upload routes
		v1.POST("/uploads", middleware.AuthRequired(), uploadLimiter.Middleware(), uploadHandler.Upload)
	}

	r.NoRoute(func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyRouteNotFound))
	})

	return r, nil
}
