package handlers

import (
	"github.com/gescom-erp/gescom_backend/internal/core/services"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
	"github.com/gescom-erp/gescom_backend/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	container *services.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", GetHome)

	// Setup API v1 routes; identity comes from the upstream login layer.
	setupAPIV1Routes(r, container)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	container *services.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	enterprise := v1.Group("/enterprises/:enterpriseID")

	registerPurchaseRoutes(enterprise, container.Purchase, container.Payment)
	registerStockRoutes(enterprise, container.Stock)
	registerMovementRoutes(enterprise, container.Stock)
	registerWarehouseRoutes(enterprise, container.Warehouse)
	registerSupplierRoutes(enterprise, container.Supplier)
}
