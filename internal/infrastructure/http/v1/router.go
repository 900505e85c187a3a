// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"procura/internal/domain/purchases"
	"procura/internal/domain/suppliers"
	"procura/internal/infrastructure/http/v1/handlers"
	"procura/internal/infrastructure/http/v1/middleware"
	"procura/internal/infrastructure/storage/postgres"
	"procura/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// SupplierService serves the supplier catalog
	SupplierService *suppliers.Service

	// PurchaseService serves supplier purchases
	PurchaseService *purchases.Service

	// CORSAllowedOrigins restricts cross-origin access; empty allows all
	CORSAllowedOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	router.GET("/health", healthHandler.Check)
	router.GET("/health/info", healthHandler.Info)

	supplierHandler := handlers.NewSupplierHandler(base, cfg.SupplierService)
	supplierGroup := router.Group("/suppliers")
	{
		supplierGroup.POST("", supplierHandler.Create)
		supplierGroup.GET("", supplierHandler.List)
		supplierGroup.GET("/:id", supplierHandler.Get)
		supplierGroup.PUT("/:id", supplierHandler.Update)
		supplierGroup.DELETE("/:id", supplierHandler.Delete)
		supplierGroup.GET("/search/name", supplierHandler.SearchByName)
		supplierGroup.GET("/search/taxid", supplierHandler.SearchByTaxID)
	}

	purchaseHandler := handlers.NewPurchaseHandler(base, cfg.PurchaseService)
	purchaseGroup := router.Group("/purchases")
	{
		purchaseGroup.POST("", purchaseHandler.Create)
		purchaseGroup.GET("", purchaseHandler.List)
		purchaseGroup.GET("/:id", purchaseHandler.Get)
		purchaseGroup.PUT("/:id", purchaseHandler.Update)
		purchaseGroup.DELETE("/:id", purchaseHandler.Delete)
		purchaseGroup.GET("/supplier/:supplierId", purchaseHandler.ListBySupplier)
	}

	return router
}
