package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// supplierHandler serves the purchasing-side supplier operations.
type supplierHandler struct {
	supplierService portssvc.SupplierSvc
}

func newSupplierHandler(supplier portssvc.SupplierSvc) *supplierHandler {
	return &supplierHandler{supplierService: supplier}
}

// registerSupplierRoutes registers supplier routes.
func registerSupplierRoutes(rg *gin.RouterGroup, supplier portssvc.SupplierSvc) {
	h := newSupplierHandler(supplier)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("/:supplierID", h.getSupplier)
		suppliers.DELETE("/:supplierID", h.deactivateSupplier)
	}
}

func (h *supplierHandler) getSupplier(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	supplierID := c.Param("supplierID")

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), enterpriseID, supplierID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// deactivateSupplier soft-deletes a supplier; refused with 409 while any
// non-cancelled order references it.
func (h *supplierHandler) deactivateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	supplierID := c.Param("supplierID")

	if err := h.supplierService.DeactivateSupplier(c.Request.Context(), enterpriseID, supplierID, userID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Supplier deactivated", slog.String("supplier_id", supplierID))
	c.Status(http.StatusNoContent)
}
