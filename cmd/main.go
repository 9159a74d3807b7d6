package main

import (
	"log"
	"time"

	"golang-food-gateway/configs"
	"golang-food-gateway/internal/handlers"
	"golang-food-gateway/internal/middleware"
	"golang-food-gateway/internal/services"
	"golang-food-gateway/internal/upstream"
	"golang-food-gateway/pkg/auth"
	"golang-food-gateway/pkg/messaging"
	"golang-food-gateway/pkg/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize storage, falling back to in-memory when Redis is unreachable
	var store storage.Store
	redisStore, err := storage.NewRedisStore(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if err != nil {
		log.Printf("Redis unavailable, using in-memory storage: %v", err)
		store = storage.NewMemoryStore()
	} else {
		store = redisStore
	}
	defer store.Close()

	// Initialize Kafka producer when enabled
	var kafkaProducer *messaging.KafkaProducer
	if config.Kafka.Enabled {
		kafkaProducer = messaging.NewKafkaProducer(config.Kafka.Brokers)
		defer kafkaProducer.Close()
	}

	// Initialize JWT manager (refresh: 30 days)
	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours, 30)

	// Initialize upstream restaurant backend client
	upstreamClient := upstream.NewClient(config.Upstream.BaseURL, time.Duration(config.Upstream.TimeoutSeconds)*time.Second)

	// Initialize services
	authService := services.NewAuthService(upstreamClient, jwtManager, store)
	menuService := services.NewMenuService(store, upstreamClient)
	cartService := services.NewCartService(store, config.Pricing.TaxRate)
	orderService := services.NewOrderService(store, upstreamClient)
	checkoutService := services.NewCheckoutService(cartService, orderService, upstreamClient, kafkaProducer)
	reviewService := services.NewReviewService(upstreamClient)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService, authService)
	orderHandler := handlers.NewOrderHandler(orderService, authService)
	reviewHandler := handlers.NewReviewHandler(reviewService, authService)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "golang-food-gateway",
		})
	})

	// API routes
	api := router.Group("/api/v1")

	// Register routes
	authHandler.RegisterRoutes(api, authMiddleware)
	menuHandler.RegisterRoutes(api, authMiddleware)
	cartHandler.RegisterRoutes(api, authMiddleware)
	orderHandler.RegisterRoutes(api, authMiddleware)
	reviewHandler.RegisterRoutes(api, authMiddleware)

	log.Printf("🚀 Server starting on port %s", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}
