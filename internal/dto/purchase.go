package dto

import (
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one line of a purchase order command.
type OrderLineRequest struct {
	ProductID    string          `json:"productID" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
}

// CreateOrderRequest creates a new InProgress purchase order.
type CreateOrderRequest struct {
	WarehouseID    string             `json:"warehouseID" binding:"required"`
	SupplierID     *string            `json:"supplierID"`
	Lines          []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	GlobalDiscount decimal.Decimal    `json:"globalDiscount"`
}

// UpdateOrderLinesRequest replaces the lines of an InProgress order.
type UpdateOrderLinesRequest struct {
	Lines          []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	GlobalDiscount *decimal.Decimal   `json:"globalDiscount"`
}

// ApplyPaymentRequest applies one (possibly partial) payment to an order.
type ApplyPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
}

// CancelOrderRequest cancels an order, keeping the operator's reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderLineResponse mirrors one persisted order line.
type OrderLineResponse struct {
	LineID       string          `json:"lineID"`
	ProductID    string          `json:"productID"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// PaymentResponse mirrors one payment record.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Voided      bool            `json:"voided"`
	PaidAt      time.Time       `json:"paidAt"`
}

// OrderResponse mirrors a purchase order with its lines and payments.
type OrderResponse struct {
	OrderID        string              `json:"orderID"`
	Number         string              `json:"number"`
	SupplierID     *string             `json:"supplierID"`
	WarehouseID    string              `json:"warehouseID"`
	OrderedAt      time.Time           `json:"orderedAt"`
	GlobalDiscount decimal.Decimal     `json:"globalDiscount"`
	GrandTotal     decimal.Decimal     `json:"grandTotal"`
	State          string              `json:"state"`
	PaymentStatus  string              `json:"paymentStatus"`
	Lines          []OrderLineResponse `json:"lines,omitempty"`
	Payments       []PaymentResponse   `json:"payments,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
}

// ToOrderResponse converts a domain.PurchaseOrder to its response DTO.
func ToOrderResponse(o *domain.PurchaseOrder) OrderResponse {
	resp := OrderResponse{
		OrderID:        o.OrderID,
		Number:         o.Number,
		SupplierID:     o.SupplierID,
		WarehouseID:    o.WarehouseID,
		OrderedAt:      o.OrderedAt,
		GlobalDiscount: o.GlobalDiscount,
		GrandTotal:     o.GrandTotal,
		State:          string(o.State),
		PaymentStatus:  string(o.PaymentStatus),
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			LineID:       l.LineID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			LineDiscount: l.LineDiscount,
			LineTotal:    l.LineTotal,
		})
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			PaymentID:   p.PaymentID,
			Amount:      p.Amount,
			Method:      p.Method,
			Reference:   p.Reference,
			Description: p.Description,
			Voided:      p.Voided,
			PaidAt:      p.PaidAt,
		})
	}
	return resp
}

// ToOrderResponses converts a slice of orders.
func ToOrderResponses(orders []domain.PurchaseOrder) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
