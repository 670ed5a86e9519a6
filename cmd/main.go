package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"smartstock/internal/caching"
	"smartstock/internal/config"
	"smartstock/internal/handlers"
	"smartstock/internal/jobs"
	"smartstock/internal/middleware"
	"smartstock/internal/repositories"
	"smartstock/internal/services"
	"smartstock/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create database connection pool
	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.ClosePool(pool)

	// Initialize MinIO storage for business logos
	storageSvc, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO storage: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create services
	authSvc := services.NewAuthService(cfg.JWTSecret)
	productSvc := services.NewProductService(productRepo, cacheSvc)
	supplierSvc := services.NewSupplierService(supplierRepo)
	saleSvc := services.NewSaleService(saleRepo, cacheSvc)
	settingsSvc := services.NewSettingsService(settingsRepo, userRepo, storageSvc, cacheSvc, cfg.MinioBucket)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	productHandlers := handlers.NewProductHandlers(productSvc, cfg.LowStockThreshold)
	customerHandlers := handlers.NewCustomerHandlers(customerRepo)
	supplierHandlers := handlers.NewSupplierHandlers(supplierSvc)
	salesHandlers := handlers.NewSalesHandlers(saleSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(reportRepo, cacheSvc)
	reportHandlers := handlers.NewReportHandlers(reportRepo)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)

	// Background low-stock sweep
	sweeper, err := jobs.NewLowStockSweeper(productRepo, settingsRepo, cfg.LowStockThreshold)
	if err != nil {
		log.Fatalf("Failed to create low-stock sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	api := e.Group("/api")

	// Authentication routes (no JWT required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	// Protected routes (require JWT)
	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc))
	admin := middleware.RequireAdmin()

	// User routes
	protected.PUT("/users/profile", authHandlers.UpdateProfile)
	protected.PUT("/users/change-password", authHandlers.ChangePassword)
	protected.GET("/users", authHandlers.ListUsers, admin)
	protected.PUT("/users/:id/role", authHandlers.UpdateUserRole, admin)

	// Product routes (mutations are admin only)
	protected.GET("/products", productHandlers.ListProducts)
	protected.GET("/products/low-stock", productHandlers.ListLowStock)
	protected.POST("/products", productHandlers.CreateProduct, admin)
	protected.POST("/products/bulk", productHandlers.BulkCreateProducts, admin)
	protected.PUT("/products/:id", productHandlers.UpdateProduct, admin)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct, admin)

	// Customer routes (mutations are admin only)
	protected.GET("/customers", customerHandlers.ListCustomers)
	protected.POST("/customers", customerHandlers.CreateCustomer, admin)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer, admin)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer, admin)

	// Supplier routes (admin only)
	protected.GET("/suppliers", supplierHandlers.ListSuppliers, admin)
	protected.POST("/suppliers", supplierHandlers.CreateSupplier, admin)
	protected.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier, admin)
	protected.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier, admin)

	// Sale routes
	protected.POST("/sales", salesHandlers.CreateSale)
	protected.GET("/sales", salesHandlers.ListSales)
	protected.GET("/sales/:id", salesHandlers.GetSale)

	// Dashboard and reports
	protected.GET("/dashboard", dashboardHandlers.GetDashboard)
	protected.GET("/dashboard/stats", dashboardHandlers.GetStats)
	protected.GET("/reports/sales", reportHandlers.GetSalesReport)
	protected.GET("/reports/sales-over-time", reportHandlers.GetSalesOverTime)

	// Business settings (writes are admin only)
	protected.GET("/settings/business", settingsHandlers.GetSettings)
	protected.PUT("/settings/business", settingsHandlers.UpdateSettings, admin)
	protected.POST("/settings/business/logo", settingsHandlers.UploadLogo, admin)
	protected.POST("/settings/factory-reset", settingsHandlers.FactoryReset, admin)

	log.Printf("SmartStock server v%s starting on port %d", version, cfg.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
