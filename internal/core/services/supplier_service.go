package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
)

// supplierService owns the purchasing-side supplier operations: lookup and
// the order-guarded soft delete.
type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
	orderRepo    portsrepo.OrderReader
}

// NewSupplierService creates a new SupplierSvc.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade, orderRepo portsrepo.OrderReader) portssvc.SupplierSvc {
	return &supplierService{
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
	}
}

var _ portssvc.SupplierSvc = (*supplierService)(nil)

func (s *supplierService) GetSupplier(ctx context.Context, enterpriseID, supplierID string) (*domain.Supplier, error) {
	return s.supplierRepo.FindSupplierByID(ctx, enterpriseID, supplierID)
}

// DeactivateSupplier soft-deletes a supplier unless a non-cancelled order
// still references it.
func (s *supplierService) DeactivateSupplier(ctx context.Context, enterpriseID, supplierID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.supplierRepo.FindSupplierByID(ctx, enterpriseID, supplierID); err != nil {
		return err
	}
	active, err := s.orderRepo.CountActiveOrdersBySupplier(ctx, enterpriseID, supplierID)
	if err != nil {
		return fmt.Errorf("failed to count orders of supplier %s: %w", supplierID, err)
	}
	if active > 0 {
		return fmt.Errorf("%w: supplier %s has %d non-cancelled orders", apperrors.ErrConflict, supplierID, active)
	}
	if err := s.supplierRepo.DeactivateSupplier(ctx, enterpriseID, supplierID, userID, time.Now().UTC()); err != nil {
		return err
	}
	logger.Info("Supplier deactivated", "supplierID", supplierID)
	return nil
}
