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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for stock line data.
func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepositoryWithTx {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxStockRepository implements portsrepo.StockRepositoryWithTx
var _ portsrepo.StockRepositoryWithTx = (*PgxStockRepository)(nil)

const stockLineColumns = `
	stock_line_id, enterprise_id, product_id, warehouse_id,
	on_hand, reserved, unit_cost, total_value, minimum_stock, last_movement_at,
	created_at, created_by, last_updated_at, last_updated_by`

// rowScanner abstracts pgx.Row and pgx.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockLine(row rowScanner) (models.StockLine, error) {
	var m models.StockLine
	err := row.Scan(
		&m.StockLineID,
		&m.EnterpriseID,
		&m.ProductID,
		&m.WarehouseID,
		&m.OnHand,
		&m.Reserved,
		&m.UnitCost,
		&m.TotalValue,
		&m.MinimumStock,
		&m.LastMovementAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindStockLine retrieves the stock line of one (product, warehouse) pair.
func (r *PgxStockRepository) FindStockLine(ctx context.Context, enterpriseID, productID, warehouseID string) (*domain.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_produits_entrepot
		WHERE enterprise_id = $1 AND product_id = $2 AND warehouse_id = $3;
	`
	m, err := scanStockLine(r.Pool.QueryRow(ctx, query, enterpriseID, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock line for product %s in warehouse %s: %w", productID, warehouseID, err)
	}
	line := mapping.ToDomainStockLine(m)
	return &line, nil
}

func (r *PgxStockRepository) listStockLines(ctx context.Context, query string, args ...any) ([]domain.StockLine, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.StockLine
	for rows.Next() {
		m, err := scanStockLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock line: %w", err)
		}
		lines = append(lines, mapping.ToDomainStockLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading stock lines: %w", err)
	}
	return lines, nil
}

// ListStockByProduct retrieves every stock line of a product across warehouses.
func (r *PgxStockRepository) ListStockByProduct(ctx context.Context, enterpriseID, productID string) ([]domain.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_produits_entrepot
		WHERE enterprise_id = $1 AND product_id = $2
		ORDER BY warehouse_id;
	`
	return r.listStockLines(ctx, query, enterpriseID, productID)
}

// ListStockByWarehouse retrieves every stock line held in a warehouse.
func (r *PgxStockRepository) ListStockByWarehouse(ctx context.Context, enterpriseID, warehouseID string) ([]domain.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_produits_entrepot
		WHERE enterprise_id = $1 AND warehouse_id = $2
		ORDER BY product_id;
	`
	return r.listStockLines(ctx, query, enterpriseID, warehouseID)
}

// ListBelowMinimum retrieves stock lines whose on-hand quantity is below their minimum level.
func (r *PgxStockRepository) ListBelowMinimum(ctx context.Context, enterpriseID string) ([]domain.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_produits_entrepot
		WHERE enterprise_id = $1 AND minimum_stock > 0 AND on_hand < minimum_stock
		ORDER BY product_id, warehouse_id;
	`
	return r.listStockLines(ctx, query, enterpriseID)
}

// AggregateProductCost derives the quantity-weighted valuation of a product
// across all its stock lines. Products with no stock value at zero.
func (r *PgxStockRepository) AggregateProductCost(ctx context.Context, enterpriseID, productID string) (*domain.ProductCost, error) {
	query := `
		SELECT COALESCE(SUM(on_hand), 0), COALESCE(SUM(total_value), 0)
		FROM stock_produits_entrepot
		WHERE enterprise_id = $1 AND product_id = $2;
	`
	var onHand, totalValue decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, enterpriseID, productID).Scan(&onHand, &totalValue); err != nil {
		return nil, fmt.Errorf("failed to aggregate cost for product %s: %w", productID, err)
	}

	unitCost := decimal.Zero
	if onHand.Sign() > 0 {
		unitCost = domain.RoundMoney(totalValue.Div(onHand))
	}
	return &domain.ProductCost{
		ProductID:  productID,
		OnHand:     onHand,
		UnitCost:   unitCost,
		TotalValue: totalValue,
	}, nil
}

// FindStockLineForUpdate locks and returns an existing stock line.
func (r *PgxStockRepository) FindStockLineForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, productID, warehouseID string) (*domain.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_produits_entrepot
		WHERE enterprise_id = $1 AND product_id = $2 AND warehouse_id = $3
		FOR UPDATE;
	`
	m, err := scanStockLine(tx.QueryRow(ctx, query, enterpriseID, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock stock line for product %s in warehouse %s: %w", productID, warehouseID, err)
	}
	line := mapping.ToDomainStockLine(m)
	return &line, nil
}

// FindOrCreateStockLineForUpdate locks and returns the stock line, inserting
// an empty one when the (product, warehouse) pair has never held stock. The
// insert tolerates a concurrent creator; the subsequent locked read wins
// either way.
func (r *PgxStockRepository) FindOrCreateStockLineForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, productID, warehouseID, userID string) (*domain.StockLine, error) {
	line, err := r.FindStockLineForUpdate(ctx, tx, enterpriseID, productID, warehouseID)
	if err == nil {
		return line, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	insertQuery := `
		INSERT INTO stock_produits_entrepot (
			stock_line_id, enterprise_id, product_id, warehouse_id,
			on_hand, reserved, unit_cost, total_value, minimum_stock,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, 0, 0, 0, 0, 0, $5, $6, $5, $6)
		ON CONFLICT (enterprise_id, product_id, warehouse_id) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insertQuery, uuid.NewString(), enterpriseID, productID, warehouseID, now, userID); err != nil {
		return nil, fmt.Errorf("failed to create stock line for product %s in warehouse %s: %w", productID, warehouseID, err)
	}
	return r.FindStockLineForUpdate(ctx, tx, enterpriseID, productID, warehouseID)
}

// SaveStockLineInTx persists the mutated quantities and valuation of a locked line.
func (r *PgxStockRepository) SaveStockLineInTx(ctx context.Context, tx pgx.Tx, line domain.StockLine) error {
	m := mapping.ToModelStockLine(line)
	query := `
		UPDATE stock_produits_entrepot
		SET on_hand = $2, reserved = $3, unit_cost = $4, total_value = $5,
		    minimum_stock = $6, last_movement_at = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE stock_line_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.StockLineID,
		m.OnHand,
		m.Reserved,
		m.UnitCost,
		m.TotalValue,
		m.MinimumStock,
		m.LastMovementAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock line %s: %w", m.StockLineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
