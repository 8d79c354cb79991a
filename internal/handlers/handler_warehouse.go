package handlers

import (
	"net/http"

	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// warehouseHandler serves warehouse lookups and point-of-sale routing.
type warehouseHandler struct {
	warehouseService portssvc.WarehouseSvc
}

func newWarehouseHandler(warehouse portssvc.WarehouseSvc) *warehouseHandler {
	return &warehouseHandler{warehouseService: warehouse}
}

// registerWarehouseRoutes registers warehouse routes.
func registerWarehouseRoutes(rg *gin.RouterGroup, warehouse portssvc.WarehouseSvc) {
	h := newWarehouseHandler(warehouse)

	wh := rg.Group("/warehouses")
	{
		wh.GET("", h.listWarehouses)
		wh.GET("/:warehouseID", h.getWarehouse)
		wh.GET("/resolve/:handle", h.resolveWarehouse)
	}
}

func (h *warehouseHandler) listWarehouses(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	warehouses, err := h.warehouseService.ListWarehouses(c.Request.Context(), enterpriseID)
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]dto.WarehouseResponse, len(warehouses))
	for i := range warehouses {
		responses[i] = dto.ToWarehouseResponse(&warehouses[i])
	}
	c.JSON(http.StatusOK, gin.H{"warehouses": responses})
}

func (h *warehouseHandler) getWarehouse(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	warehouseID := c.Param("warehouseID")

	warehouse, err := h.warehouseService.GetWarehouse(c.Request.Context(), enterpriseID, warehouseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWarehouseResponse(warehouse))
}

// resolveWarehouse maps a point-of-sale handle (boutique, pharmacy, ...) to
// its operational warehouse.
func (h *warehouseHandler) resolveWarehouse(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	handle := c.Param("handle")

	warehouse, err := h.warehouseService.ResolveWarehouse(c.Request.Context(), enterpriseID, handle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWarehouseResponse(warehouse))
}
