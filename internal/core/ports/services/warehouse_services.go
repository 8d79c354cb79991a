package services

import (
	"context"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
)

// WarehouseSvc is the warehouse registry and point-of-sale routing table.
// The routing map is injected at startup and refreshable on demand.
type WarehouseSvc interface {
	// ResolveWarehouse maps a point-of-sale or module handle to its
	// operational warehouse.
	ResolveWarehouse(ctx context.Context, enterpriseID, handle string) (*domain.Warehouse, error)

	// GetWarehouse retrieves one warehouse.
	GetWarehouse(ctx context.Context, enterpriseID, warehouseID string) (*domain.Warehouse, error)

	// ListWarehouses retrieves the active warehouses of an enterprise.
	ListWarehouses(ctx context.Context, enterpriseID string) ([]domain.Warehouse, error)

	// SetRouting replaces the handle-to-warehouse-code routing map.
	SetRouting(routing map[string]string)
}
