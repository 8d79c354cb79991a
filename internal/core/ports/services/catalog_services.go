package services

import (
	"context"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
)

// SupplierSvc exposes the supplier operations the purchasing engine owns.
// Full supplier CRUD belongs to the catalogue module; here only lookup and
// the order-guarded soft delete live.
type SupplierSvc interface {
	// GetSupplier retrieves one supplier.
	GetSupplier(ctx context.Context, enterpriseID, supplierID string) (*domain.Supplier, error)

	// DeactivateSupplier soft-deletes a supplier. Fails with
	// apperrors.ErrConflict while any non-cancelled order references it.
	DeactivateSupplier(ctx context.Context, enterpriseID, supplierID, userID string) error
}
