package handlers

import (
	"net/http"
	"strconv"
	"time"

	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// movementHandler serves the read side of the movement log.
type movementHandler struct {
	stockService portssvc.StockSvc
}

func newMovementHandler(stock portssvc.StockSvc) *movementHandler {
	return &movementHandler{stockService: stock}
}

// registerMovementRoutes registers movement-log routes.
func registerMovementRoutes(rg *gin.RouterGroup, stock portssvc.StockSvc) {
	h := newMovementHandler(stock)
	rg.GET("/movements", h.listMovements)
}

func (h *movementHandler) listMovements(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")

	filter := portsrepo.MovementFilter{}
	if v := c.Query("productID"); v != "" {
		filter.ProductID = &v
	}
	var observer *string
	if v := c.Query("warehouseID"); v != "" {
		filter.WarehouseID = &v
		observer = &v
	}
	if v := c.Query("reference"); v != "" {
		filter.Reference = &v
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = &t
		}
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	movements, err := h.stockService.ListMovements(c.Request.Context(), enterpriseID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.MovementResponse, len(movements))
	for i := range movements {
		responses[i] = dto.ToMovementResponse(&movements[i], observer)
	}
	c.JSON(http.StatusOK, gin.H{"movements": responses})
}
