package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/gescom-erp/gescom_backend/internal/models"
	"github.com/gescom-erp/gescom_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountingConfigRepository struct {
	BaseRepository
}

// newPgxAccountingConfigRepository creates a new reader for the
// role-to-account mapping.
func newPgxAccountingConfigRepository(pool *pgxpool.Pool) portsrepo.AccountingConfigReader {
	return &PgxAccountingConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountingConfigRepository implements portsrepo.AccountingConfigReader
var _ portsrepo.AccountingConfigReader = (*PgxAccountingConfigRepository)(nil)

// FindAccountingConfig retrieves the accounting configuration of an
// enterprise, or apperrors.ErrNotFound when none was ever set up.
func (r *PgxAccountingConfigRepository) FindAccountingConfig(ctx context.Context, enterpriseID string) (*domain.AccountingConfig, error) {
	query := `
		SELECT enterprise_id, stock_account_id, purchases_account_id, supplier_account_id,
		       cash_account_id, bank_account_id, sales_account_id
		FROM compta_config
		WHERE enterprise_id = $1;
	`
	var m models.AccountingConfig
	err := r.Pool.QueryRow(ctx, query, enterpriseID).Scan(
		&m.EnterpriseID,
		&m.StockAccountID,
		&m.PurchasesAccountID,
		&m.SupplierAccountID,
		&m.CashAccountID,
		&m.BankAccountID,
		&m.SalesAccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find accounting config for enterprise %s: %w", enterpriseID, err)
	}
	cfg := mapping.ToDomainAccountingConfig(m)
	return &cfg, nil
}
