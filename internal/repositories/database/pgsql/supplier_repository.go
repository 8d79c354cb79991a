package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/gescom-erp/gescom_backend/internal/models"
	"github.com/gescom-erp/gescom_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSupplierRepository implements portsrepo.SupplierRepositoryFacade
var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

// FindSupplierByID retrieves one supplier.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, enterpriseID, supplierID string) (*domain.Supplier, error) {
	query := `
		SELECT fournisseur_id, enterprise_id, name, contact_name, phone, email, address, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM core_fournisseurs
		WHERE enterprise_id = $1 AND fournisseur_id = $2;
	`
	var m models.Supplier
	err := r.Pool.QueryRow(ctx, query, enterpriseID, supplierID).Scan(
		&m.SupplierID,
		&m.EnterpriseID,
		&m.Name,
		&m.ContactName,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	supplier := mapping.ToDomainSupplier(m)
	return &supplier, nil
}

// DeactivateSupplier soft-deletes a supplier. The caller checks the
// no-active-orders guard first.
func (r *PgxSupplierRepository) DeactivateSupplier(ctx context.Context, enterpriseID, supplierID, userID string, at time.Time) error {
	query := `
		UPDATE core_fournisseurs
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE enterprise_id = $1 AND fournisseur_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, enterpriseID, supplierID, at, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate supplier %s: %w", supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
