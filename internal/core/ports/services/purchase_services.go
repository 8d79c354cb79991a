package services

import (
	"context"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/gescom-erp/gescom_backend/internal/dto"
)

// PurchaseSvc drives the purchase order lifecycle: drafting, receipt,
// cancellation. Payments go through PaymentSvc.
type PurchaseSvc interface {
	// CreatePurchaseOrder numbers and persists a new InProgress order and
	// posts its order-creation journal.
	CreatePurchaseOrder(ctx context.Context, enterpriseID string, req dto.CreateOrderRequest, userID string) (*domain.PurchaseOrder, error)

	// UpdatePurchaseOrderLines replaces the lines of an InProgress order,
	// recomputes the grand total and replaces the order-creation journal.
	UpdatePurchaseOrderLines(ctx context.Context, enterpriseID, orderID string, req dto.UpdateOrderLinesRequest, userID string) (*domain.PurchaseOrder, error)

	// ReceivePurchaseOrder applies every line as a stock entry. Returns false
	// without error when the order was already received.
	ReceivePurchaseOrder(ctx context.Context, enterpriseID, orderID, userID string) (bool, error)

	// CancelPurchaseOrder cancels an InProgress or Received order,
	// compensating received stock and reversing journals and payments.
	CancelPurchaseOrder(ctx context.Context, enterpriseID, orderID, reason, userID string) error

	// GetOrder retrieves an order with lines and payments.
	GetOrder(ctx context.Context, enterpriseID, orderID string) (*domain.PurchaseOrder, error)

	// ListOrders retrieves order headers matching the filter.
	ListOrders(ctx context.Context, enterpriseID string, filter portsrepo.OrderFilter) ([]domain.PurchaseOrder, error)
}

// PaymentSvc is the payment allocator: applies partial payments to an order
// and drives the payment-status axis.
type PaymentSvc interface {
	ApplyPayment(ctx context.Context, enterpriseID, orderID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentRecord, error)
}
