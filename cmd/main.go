package main

import (
	"marketplace-service/internal/handler"
	mid "marketplace-service/internal/middleware"
	"marketplace-service/pkg/config"
	"marketplace-service/pkg/database"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting marketplace-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Open database; main owns the handle and its lifecycle
	db, err := database.Connect(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connection established")

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Handlers
	products := handler.NewProductHandler(db)
	auth := handler.NewAuthHandler(db)
	users := handler.NewUserHandler(db)
	cart := handler.NewCartHandler(db)
	comments := handler.NewCommentHandler(db)
	follows := handler.NewFollowHandler(db)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Product routes
	e.POST("/products", products.Create)
	e.GET("/products", products.List)
	e.GET("/products/:id", products.Get)
	e.PUT("/products/:id", products.Update)
	e.DELETE("/products/:id", products.Delete)

	// Comment routes
	e.GET("/products/:id/comments", comments.ListByProduct)
	e.POST("/products/:id/comments", comments.Create)
	e.PUT("/products/:id/comments/:commentId", comments.UpdateLikes)
	e.DELETE("/products/:id/comments/:commentId", comments.Delete)
	e.GET("/comments", comments.List)

	// Cart routes
	e.POST("/cart", cart.Add)
	e.GET("/cart", cart.List)
	e.GET("/cart/:id", cart.Get)
	e.DELETE("/cart/:id", cart.Delete)

	// Account routes
	e.POST("/login", auth.Login)
	e.POST("/register", auth.Register)
	e.POST("/registerseller", auth.RegisterSeller)
	e.GET("/users", users.List)
	e.GET("/users/:id", users.Get)
	e.GET("/userid", users.GetByUsername)
	e.PUT("/users/:id", users.Update)
	e.DELETE("/users/:id", users.Delete)

	// Follow routes
	e.POST("/follows", follows.Create)
	e.GET("/follows", follows.List)
	e.GET("/follows/seller/:sellerId", follows.FollowersBySeller)
	e.GET("/follows/:userId", follows.FollowedSellers)
	e.DELETE("/follows/:id", follows.Delete)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		if closeErr := database.Close(db); closeErr != nil {
			log.Error("Failed to close database", zap.Error(closeErr))
		}
		log.Fatal("Server error", zap.Error(err))
	}
}
