package repositories

import (
	"context"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OrderFilter narrows an order listing. Nil fields are not applied.
type OrderFilter struct {
	SupplierID  *string
	WarehouseID *string
	State       *domain.OrderState
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// OrderReader defines read operations for purchase orders.
type OrderReader interface {
	// FindOrderByID retrieves an order with its lines and payments.
	FindOrderByID(ctx context.Context, enterpriseID, orderID string) (*domain.PurchaseOrder, error)

	// ListOrders retrieves order headers matching the filter, newest first.
	ListOrders(ctx context.Context, enterpriseID string, filter OrderFilter) ([]domain.PurchaseOrder, error)

	// CountActiveOrdersBySupplier counts non-cancelled orders referencing a
	// supplier. Guards supplier soft deletion.
	CountActiveOrdersBySupplier(ctx context.Context, enterpriseID, supplierID string) (int, error)
}

// OrderWriter defines in-transaction write operations for purchase orders.
// Every state transition starts by locking the order row FOR UPDATE so the
// lifecycle of one order is totally ordered.
type OrderWriter interface {
	// FindOrderForUpdate locks the order row and returns the order with its
	// lines and payments.
	FindOrderForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, orderID string) (*domain.PurchaseOrder, error)

	// SaveOrderInTx inserts a new order header with its lines.
	SaveOrderInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder) error

	// ReplaceOrderLinesInTx deletes and re-inserts the lines of an order and
	// stores the recomputed grand total.
	ReplaceOrderLinesInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder) error

	// UpdateOrderStateInTx stores a new lifecycle state and payment status.
	UpdateOrderStateInTx(ctx context.Context, tx pgx.Tx, enterpriseID, orderID string, state domain.OrderState, paymentStatus domain.PaymentStatus, userID string, at time.Time) error

	// SavePaymentInTx appends a payment record to an order.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord) error

	// VoidPaymentInTx zeroes a payment's amount, replacing its description.
	VoidPaymentInTx(ctx context.Context, tx pgx.Tx, paymentID, description, userID string, at time.Time) error
}

// OrderRepositoryFacade combines all purchase-order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities.
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}
