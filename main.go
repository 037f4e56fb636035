package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/coolbreeze/coolbreeze-api/config"
	"github.com/coolbreeze/coolbreeze-api/controllers"
	"github.com/coolbreeze/coolbreeze-api/middleware"
	"github.com/coolbreeze/coolbreeze-api/models"
	"github.com/coolbreeze/coolbreeze-api/services"
)

func main() {
	logrus.Info("Starting CoolBreeze API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.ApprovedEmail{},
		&models.Rider{},
		&models.Product{},
		&models.Order{},
	); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	logrus.Info("Database migration completed successfully")

	// External identity provider used by the sign-in endpoints
	if _, err := services.InitIdentityVerifier(cfg); err != nil {
		logrus.Fatalf("Failed to initialize identity verifier: %v", err)
	}

	// S3-backed product image storage
	if _, err := services.InitS3Service(cfg); err != nil {
		logrus.Fatalf("Failed to initialize S3 service: %v", err)
	}

	router := gin.Default()
	router.Use(cors.Default())
	registerRoutes(router, cfg)

	addr := ":" + cfg.Port
	logrus.Infof("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes attaches the full API surface. Every group past /auth
// sits behind the session guard with a fixed role set per route group.
func registerRoutes(router *gin.Engine, cfg *config.Config) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthCheck)

	auth := v1.Group("/auth")
	{
		auth.POST("/user/signin", controllers.UserSignIn)
		auth.POST("/rider/signin", controllers.RiderSignIn)
	}

	admin := v1.Group("/admin", middleware.RequireAuth(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/approved-emails", controllers.ApproveEmail)
		admin.POST("/products", controllers.CreateProduct)
		admin.POST("/products/images", controllers.UploadProductImage)
		admin.POST("/riders", controllers.CreateRider)
		admin.GET("/riders", controllers.ListRiders)
		admin.GET("/orders", controllers.ListAllOrders)
		admin.GET("/orders/:id", controllers.GetOrderDetail)
		admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
		admin.PUT("/orders/:id/rider", controllers.AssignRider)
	}

	customer := v1.Group("/customer", middleware.RequireAuth(cfg.JWTSecret), middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("/products", controllers.ListProducts)
		customer.GET("/products/:id", controllers.GetProduct)
		customer.PUT("/profile", controllers.UpdateProfile)
		customer.POST("/orders", controllers.CreateOrder)
		customer.GET("/orders", controllers.ListMyOrders)
		customer.GET("/orders/:id", controllers.GetMyOrder)
	}

	rider := v1.Group("/rider", middleware.RequireAuth(cfg.JWTSecret), middleware.RequireRole(models.RoleRider))
	{
		rider.GET("/profile", controllers.GetRiderProfile)
		rider.GET("/orders", controllers.ListAssignedOrders)
		rider.GET("/orders/:id", controllers.GetAssignedOrder)
		rider.PUT("/orders/:id/status", controllers.UpdateDeliveryStatus)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	db := config.GetDB()
	if db != nil {
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Database connection failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "CoolBreeze API is running",
	})
}
