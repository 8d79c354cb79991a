package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
)

// DefaultRouting maps the built-in point-of-sale handles to warehouse codes.
// Deployments override it through configuration.
var DefaultRouting = map[string]string{
	"boutique":   "POS_2",
	"pharmacy":   "POS_3",
	"restaurant": "POS_4",
	"event_hall": "POS_5",
	"principal":  "MAG_1",
}

// warehouseService is the warehouse registry and point-of-sale routing table.
type warehouseService struct {
	warehouseRepo portsrepo.WarehouseReader

	mu      sync.RWMutex
	routing map[string]string
}

// NewWarehouseService creates a new WarehouseSvc. A nil routing map installs
// the built-in default.
func NewWarehouseService(warehouseRepo portsrepo.WarehouseReader, routing map[string]string) portssvc.WarehouseSvc {
	svc := &warehouseService{warehouseRepo: warehouseRepo}
	svc.SetRouting(routing)
	return svc
}

var _ portssvc.WarehouseSvc = (*warehouseService)(nil)

// SetRouting replaces the handle-to-warehouse-code map.
func (s *warehouseService) SetRouting(routing map[string]string) {
	if routing == nil {
		routing = DefaultRouting
	}
	copied := make(map[string]string, len(routing))
	for handle, code := range routing {
		copied[handle] = code
	}
	s.mu.Lock()
	s.routing = copied
	s.mu.Unlock()
}

// ResolveWarehouse maps a point-of-sale or module handle to its operational
// warehouse.
func (s *warehouseService) ResolveWarehouse(ctx context.Context, enterpriseID, handle string) (*domain.Warehouse, error) {
	s.mu.RLock()
	code, ok := s.routing[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: handle %q is not registered", apperrors.ErrUnknownPointOfSale, handle)
	}

	warehouse, err := s.warehouseRepo.FindWarehouseByCode(ctx, enterpriseID, code)
	if err != nil {
		return nil, fmt.Errorf("warehouse %s for handle %q: %w", code, handle, err)
	}
	return warehouse, nil
}

func (s *warehouseService) GetWarehouse(ctx context.Context, enterpriseID, warehouseID string) (*domain.Warehouse, error) {
	return s.warehouseRepo.FindWarehouseByID(ctx, enterpriseID, warehouseID)
}

func (s *warehouseService) ListWarehouses(ctx context.Context, enterpriseID string) ([]domain.Warehouse, error) {
	return s.warehouseRepo.ListWarehouses(ctx, enterpriseID)
}
