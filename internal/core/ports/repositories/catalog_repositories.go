package repositories

import (
	"context"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
)

// ProductReader defines the product lookups the engine needs. Product CRUD
// itself lives with the out-of-scope catalogue module.
type ProductReader interface {
	// FindProductByID retrieves one product.
	FindProductByID(ctx context.Context, enterpriseID, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves several products keyed by ID. Missing IDs
	// are absent from the map.
	FindProductsByIDs(ctx context.Context, enterpriseID string, productIDs []string) (map[string]domain.Product, error)
}

// SupplierReader defines the supplier lookups the engine needs.
type SupplierReader interface {
	// FindSupplierByID retrieves one supplier.
	FindSupplierByID(ctx context.Context, enterpriseID, supplierID string) (*domain.Supplier, error)
}

// SupplierWriter allows deactivating a supplier once no non-cancelled order
// references it.
type SupplierWriter interface {
	DeactivateSupplier(ctx context.Context, enterpriseID, supplierID, userID string, at time.Time) error
}

// SupplierRepositoryFacade combines all supplier repository interfaces.
type SupplierRepositoryFacade interface {
	SupplierReader
	SupplierWriter
}

// WarehouseReader defines warehouse lookups for routing and validation.
type WarehouseReader interface {
	// FindWarehouseByID retrieves one warehouse.
	FindWarehouseByID(ctx context.Context, enterpriseID, warehouseID string) (*domain.Warehouse, error)

	// FindWarehouseByCode retrieves one warehouse by its unique code.
	FindWarehouseByCode(ctx context.Context, enterpriseID, code string) (*domain.Warehouse, error)

	// FindDefaultWarehouse retrieves the enterprise default warehouse, if any.
	FindDefaultWarehouse(ctx context.Context, enterpriseID string) (*domain.Warehouse, error)

	// ListWarehouses retrieves the active warehouses of an enterprise.
	ListWarehouses(ctx context.Context, enterpriseID string) ([]domain.Warehouse, error)
}

// AccountingConfigReader loads the role-to-account mapping of an enterprise.
type AccountingConfigReader interface {
	// FindAccountingConfig retrieves the accounting configuration, or
	// apperrors.ErrNotFound when the enterprise has none.
	FindAccountingConfig(ctx context.Context, enterpriseID string) (*domain.AccountingConfig, error)
}
