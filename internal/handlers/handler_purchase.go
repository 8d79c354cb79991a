package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// purchaseHandler handles HTTP requests for the purchase order lifecycle.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvc
	paymentService  portssvc.PaymentSvc
}

func newPurchaseHandler(purchase portssvc.PurchaseSvc, payment portssvc.PaymentSvc) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: purchase,
		paymentService:  payment,
	}
}

// registerPurchaseRoutes registers routes for purchase orders and payments.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchase portssvc.PurchaseSvc, payment portssvc.PaymentSvc) {
	h := newPurchaseHandler(purchase, payment)

	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PUT("/:orderID/lines", h.updateOrderLines)
		orders.POST("/:orderID/receive", h.receiveOrder)
		orders.POST("/:orderID/cancel", h.cancelOrder)
		orders.POST("/:orderID/payments", h.applyPayment)
	}
}

func (h *purchaseHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.purchaseService.CreatePurchaseOrder(c.Request.Context(), enterpriseID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Purchase order created", slog.String("order_id", order.OrderID), slog.String("number", order.Number))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *purchaseHandler) getOrder(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")
	orderID := c.Param("orderID")

	order, err := h.purchaseService.GetOrder(c.Request.Context(), enterpriseID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *purchaseHandler) listOrders(c *gin.Context) {
	enterpriseID := c.Param("enterpriseID")

	filter := portsrepo.OrderFilter{}
	if v := c.Query("supplierID"); v != "" {
		filter.SupplierID = &v
	}
	if v := c.Query("warehouseID"); v != "" {
		filter.WarehouseID = &v
	}
	if v := c.Query("state"); v != "" {
		state := domain.OrderState(v)
		filter.State = &state
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
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.purchaseService.ListOrders(c.Request.Context(), enterpriseID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": dto.ToOrderResponses(orders)})
}

func (h *purchaseHandler) updateOrderLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	orderID := c.Param("orderID")

	var req dto.UpdateOrderLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateOrderLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.purchaseService.UpdatePurchaseOrderLines(c.Request.Context(), enterpriseID, orderID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *purchaseHandler) receiveOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	orderID := c.Param("orderID")

	applied, err := h.purchaseService.ReceivePurchaseOrder(c.Request.Context(), enterpriseID, orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !applied {
		// Receiving twice is a no-op, not an error.
		c.JSON(http.StatusOK, gin.H{"received": false, "message": "Order already received"})
		return
	}

	logger.Info("Purchase order received", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *purchaseHandler) cancelOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	orderID := c.Param("orderID")

	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.purchaseService.CancelPurchaseOrder(c.Request.Context(), enterpriseID, orderID, req.Reason, userID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Purchase order cancelled", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (h *purchaseHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	enterpriseID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}
	orderID := c.Param("orderID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), enterpriseID, orderID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Payment applied", slog.String("order_id", orderID), slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.PaymentResponse{
		PaymentID:   payment.PaymentID,
		Amount:      payment.Amount,
		Method:      payment.Method,
		Reference:   payment.Reference,
		Description: payment.Description,
		Voided:      payment.Voided,
		PaidAt:      payment.PaidAt,
	})
}
