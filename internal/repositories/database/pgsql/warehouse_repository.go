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

type PgxWarehouseRepository struct {
	BaseRepository
}

// newPgxWarehouseRepository creates a new read-only repository for warehouses.
func newPgxWarehouseRepository(pool *pgxpool.Pool) portsrepo.WarehouseReader {
	return &PgxWarehouseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWarehouseRepository implements portsrepo.WarehouseReader
var _ portsrepo.WarehouseReader = (*PgxWarehouseRepository)(nil)

const warehouseColumns = `
	warehouse_id, enterprise_id, code, name, warehouse_type, is_active, is_default,
	created_at, created_by, last_updated_at, last_updated_by`

func scanWarehouse(row rowScanner) (models.Warehouse, error) {
	var m models.Warehouse
	err := row.Scan(
		&m.WarehouseID,
		&m.EnterpriseID,
		&m.Code,
		&m.Name,
		&m.Type,
		&m.IsActive,
		&m.IsDefault,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxWarehouseRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Warehouse, error) {
	m, err := scanWarehouse(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find warehouse: %w", err)
	}
	warehouse := mapping.ToDomainWarehouse(m)
	return &warehouse, nil
}

// FindWarehouseByID retrieves one warehouse.
func (r *PgxWarehouseRepository) FindWarehouseByID(ctx context.Context, enterpriseID, warehouseID string) (*domain.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM stock_warehouses
		WHERE enterprise_id = $1 AND warehouse_id = $2;
	`
	return r.findOne(ctx, query, enterpriseID, warehouseID)
}

// FindWarehouseByCode retrieves one warehouse by its unique code.
func (r *PgxWarehouseRepository) FindWarehouseByCode(ctx context.Context, enterpriseID, code string) (*domain.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM stock_warehouses
		WHERE enterprise_id = $1 AND code = $2;
	`
	return r.findOne(ctx, query, enterpriseID, code)
}

// FindDefaultWarehouse retrieves the enterprise default warehouse, if any.
func (r *PgxWarehouseRepository) FindDefaultWarehouse(ctx context.Context, enterpriseID string) (*domain.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM stock_warehouses
		WHERE enterprise_id = $1 AND is_default AND is_active;
	`
	return r.findOne(ctx, query, enterpriseID)
}

// ListWarehouses retrieves the active warehouses of an enterprise.
func (r *PgxWarehouseRepository) ListWarehouses(ctx context.Context, enterpriseID string) ([]domain.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM stock_warehouses
		WHERE enterprise_id = $1 AND is_active
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []domain.Warehouse
	for rows.Next() {
		m, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, mapping.ToDomainWarehouse(m))
	}
	return warehouses, rows.Err()
}
