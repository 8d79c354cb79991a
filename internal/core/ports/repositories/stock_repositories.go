package repositories

import (
	"context"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StockReader defines read operations for stock lines.
type StockReader interface {
	// FindStockLine retrieves the stock line of one (product, warehouse) pair.
	FindStockLine(ctx context.Context, enterpriseID, productID, warehouseID string) (*domain.StockLine, error)

	// ListStockByProduct retrieves every stock line of a product across warehouses.
	ListStockByProduct(ctx context.Context, enterpriseID, productID string) ([]domain.StockLine, error)

	// ListStockByWarehouse retrieves every stock line held in a warehouse.
	ListStockByWarehouse(ctx context.Context, enterpriseID, warehouseID string) ([]domain.StockLine, error)

	// ListBelowMinimum retrieves stock lines whose on-hand quantity is below their minimum level.
	ListBelowMinimum(ctx context.Context, enterpriseID string) ([]domain.StockLine, error)

	// AggregateProductCost derives the quantity-weighted valuation of a product
	// across all its stock lines.
	AggregateProductCost(ctx context.Context, enterpriseID, productID string) (*domain.ProductCost, error)
}

// StockWriter defines in-transaction write operations for stock lines. Lines
// are locked FOR UPDATE so concurrent mutations of the same pair serialize.
type StockWriter interface {
	// FindStockLineForUpdate locks and returns an existing stock line, or
	// apperrors.ErrNotFound when the pair has never held stock.
	FindStockLineForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, productID, warehouseID string) (*domain.StockLine, error)

	// FindOrCreateStockLineForUpdate locks and returns the stock line,
	// creating an empty one when the pair has never held stock.
	FindOrCreateStockLineForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, productID, warehouseID, userID string) (*domain.StockLine, error)

	// SaveStockLineInTx persists the mutated quantities and valuation of a locked line.
	SaveStockLineInTx(ctx context.Context, tx pgx.Tx, line domain.StockLine) error
}

// StockRepositoryFacade combines all stock-line repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}

// StockRepositoryWithTx extends StockRepositoryFacade with transaction capabilities.
type StockRepositoryWithTx interface {
	StockRepositoryFacade
	TransactionManager
}
