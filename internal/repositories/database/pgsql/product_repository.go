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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new read-only repository for products.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductReader {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductReader
var _ portsrepo.ProductReader = (*PgxProductRepository)(nil)

const productColumns = `
	product_id, enterprise_id, name, unit_of_measure, sale_price, standard_cost,
	sales_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row rowScanner) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.EnterpriseID,
		&m.Name,
		&m.UnitOfMeasure,
		&m.SalePrice,
		&m.StandardCost,
		&m.SalesAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindProductByID retrieves one product.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, enterpriseID, productID string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM core_products
		WHERE enterprise_id = $1 AND product_id = $2;
	`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, enterpriseID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// FindProductsByIDs retrieves several products keyed by ID. Missing IDs are
// absent from the map; the caller decides whether that is an error.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, enterpriseID string, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM core_products
		WHERE enterprise_id = $1 AND product_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, enterpriseID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product)
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[m.ProductID] = mapping.ToDomainProduct(m)
	}
	return products, rows.Err()
}
