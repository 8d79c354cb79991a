package services

import (
	"context"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// EntryParams describes one stock entry (goods in).
type EntryParams struct {
	EnterpriseID string
	ProductID    string
	WarehouseID  string
	Quantity     decimal.Decimal // > 0
	UnitCost     decimal.Decimal
	Reference    string
	Description  string
	OccurredAt   time.Time
	UserID       string
}

// ExitParams describes one stock exit (goods out).
type ExitParams struct {
	EnterpriseID  string
	ProductID     string
	WarehouseID   string
	Quantity      decimal.Decimal // > 0; recorded negated
	Reference     string
	Description   string
	OccurredAt    time.Time
	UserID        string
	AllowNegative bool                    // Only set by cancellation compensation
	Reason        domain.AdjustmentReason // Audit reason when AllowNegative
}

// AdjustmentParams describes one signed stock adjustment.
type AdjustmentParams struct {
	EnterpriseID string
	ProductID    string
	WarehouseID  string
	Quantity     decimal.Decimal  // Signed
	UnitCost     *decimal.Decimal // Optional; blended only on positive adjustments
	Reason       domain.AdjustmentReason
	Description  string
	OccurredAt   time.Time
	UserID       string
}

// TransferParams describes an atomic warehouse-to-warehouse transfer.
type TransferParams struct {
	EnterpriseID  string
	ProductID     string
	SourceID      string
	DestinationID string
	Quantity      decimal.Decimal // > 0
	Reference     string
	Description   string
	OccurredAt    time.Time
	UserID        string
}

// StockSvc is the stock ledger: the authoritative view of current stock. The
// public operations each run in their own transaction; the ...InTx variants
// let the purchase order state machine compose ledger mutations inside its
// own transaction boundary.
type StockSvc interface {
	// GetAvailable returns on-hand minus reserved for one (product, warehouse) pair.
	GetAvailable(ctx context.Context, enterpriseID, productID, warehouseID string) (decimal.Decimal, error)

	// GetStock returns the stock view of a product, optionally narrowed to one warehouse.
	GetStock(ctx context.Context, enterpriseID, productID string, warehouseID *string) ([]domain.StockLine, error)

	// ListStockByWarehouse returns every stock line held in one warehouse.
	ListStockByWarehouse(ctx context.Context, enterpriseID, warehouseID string) ([]domain.StockLine, error)

	// GetProductCost derives the product-level weighted-average cost from its stock lines.
	GetProductCost(ctx context.Context, enterpriseID, productID string) (*domain.ProductCost, error)

	// ListMovements queries the movement log.
	ListMovements(ctx context.Context, enterpriseID string, filter portsrepo.MovementFilter) ([]domain.Movement, error)

	// ListBelowMinimum lists stock lines under their minimum level.
	ListBelowMinimum(ctx context.Context, enterpriseID string) ([]domain.StockLine, error)

	ApplyEntry(ctx context.Context, p EntryParams) error
	ApplyExit(ctx context.Context, p ExitParams) error
	ApplyAdjustment(ctx context.Context, p AdjustmentParams) error
	ApplyTransfer(ctx context.Context, p TransferParams) error

	// Reserve and Release move quantity between available and reserved. They
	// do not emit movements.
	Reserve(ctx context.Context, enterpriseID, productID, warehouseID string, qty decimal.Decimal, userID string) error
	Release(ctx context.Context, enterpriseID, productID, warehouseID string, qty decimal.Decimal, userID string) error

	// ApplyEntryInTx and ApplyExitInTx mutate the ledger inside a caller-owned
	// transaction.
	ApplyEntryInTx(ctx context.Context, tx pgx.Tx, p EntryParams) error
	ApplyExitInTx(ctx context.Context, tx pgx.Tx, p ExitParams) error
}
