package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// stockHandler handles HTTP requests against the stock ledger.
type stockHandler struct {
	stockService portssvc.StockSvc
}

func newStockHandler(stock portssvc.StockSvc) *stockHandler {
	return &stockHandler{stockService: stock}
}

// registerStockRoutes registers stock ledger routes.
func registerStockRoutes(rg *gin.RouterGroup, stock portssvc.StockSvc) {
	h := newStockHandler(stock)

	st := rg.Group("/stock")
	{
		st.GET("", h.getStock)
		st.GET("/below-minimum", h.listBelowMinimum)
		st.GET("/products/:productID/cost", h.getProductCost)
		st.POST("/transfers", h.applyTransfer)
		st.POST("/adjustments", h.applyAdjustment)
		st.POST("/reservations", h.reserve)
		st.POST("/reservations/release", h.release)
	}
}

// getStock answers the stock view by product, by warehouse, or by the
// (product, warehouse) pair, depending on which query params are present.
func (h *stockHandler) getStock(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	productID := c.Query("productID")
	warehouseID := c.Query("warehouseID")

	switch {
	case productID != "":
		var wh *string
		if warehouseID != "" {
			wh = &warehouseID
		}
		lines, err := h.stockService.GetStock(c.Request.Context(), enterpriseID, productID, wh)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stock": dto.ToStockLineResponses(lines)})
	case warehouseID != "":
		lines, err := h.stockService.ListStockByWarehouse(c.Request.Context(), enterpriseID, warehouseID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stock": dto.ToStockLineResponses(lines)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "productID or warehouseID query parameter is required"})
	}
}

func (h *stockHandler) listBelowMinimum(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	lines, err := h.stockService.ListBelowMinimum(c.Request.Context(), enterpriseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": dto.ToStockLineResponses(lines)})
}

func (h *stockHandler) getProductCost(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	productID := c.Param("productID")

	cost, err := h.stockService.GetProductCost(c.Request.Context(), enterpriseID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cost)
}

func (h *stockHandler) applyTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reference := req.Reference
	if reference == "" {
		reference = "TRF-" + uuid.NewString()
	}
	err := h.stockService.ApplyTransfer(c.Request.Context(), portssvc.TransferParams{
		EnterpriseID:  enterpriseID,
		ProductID:     req.ProductID,
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Quantity:      req.Quantity,
		Reference:     reference,
		Description:   req.Description,
		OccurredAt:    time.Now().UTC(),
		UserID:        userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Stock transferred",
		slog.String("product_id", req.ProductID),
		slog.String("source", req.SourceID),
		slog.String("destination", req.DestinationID),
	)
	c.JSON(http.StatusCreated, gin.H{"reference": reference})
}

func (h *stockHandler) applyAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// The cancellation reason is reserved for the order state machine.
	reason := domain.AdjustmentReason(req.Reason)
	if reason != domain.ReasonInventoryCorrection {
		respondError(c, apperrors.ErrValidation)
		return
	}

	err := h.stockService.ApplyAdjustment(c.Request.Context(), portssvc.AdjustmentParams{
		EnterpriseID: enterpriseID,
		ProductID:    req.ProductID,
		WarehouseID:  req.WarehouseID,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		Reason:       reason,
		Description:  req.Description,
		OccurredAt:   time.Now().UTC(),
		UserID:       userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Stock adjusted", slog.String("product_id", req.ProductID), slog.String("warehouse_id", req.WarehouseID))
	c.JSON(http.StatusCreated, gin.H{"adjusted": true})
}

func (h *stockHandler) reserve(c *gin.Context) {
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.stockService.Reserve(c.Request.Context(), enterpriseID, req.ProductID, req.WarehouseID, req.Quantity, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reserved": true})
}

func (h *stockHandler) release(c *gin.Context) {
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.stockService.Release(c.Request.Context(), enterpriseID, req.ProductID, req.WarehouseID, req.Quantity, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": true})
}
