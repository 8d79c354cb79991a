package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNumberingRepository struct {
	BaseRepository
}

// newPgxNumberingRepository creates a new repository for document counters.
func newPgxNumberingRepository(pool *pgxpool.Pool) portsrepo.NumberingRepository {
	return &PgxNumberingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNumberingRepository implements portsrepo.NumberingRepository
var _ portsrepo.NumberingRepository = (*PgxNumberingRepository)(nil)

// NextSequenceInTx increments and returns the counter for
// (enterprise, prefix, day of at). The upsert takes a row lock held until the
// calling transaction commits, so two committed documents can never share a
// sequence value; a second caller blocks on the lock rather than failing.
func (r *PgxNumberingRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID, prefix string, at time.Time) (int, error) {
	day := at.UTC().Truncate(24 * time.Hour)
	query := `
		INSERT INTO core_document_counters (enterprise_id, prefix, counter_date, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (enterprise_id, prefix, counter_date)
		DO UPDATE SET last_value = core_document_counters.last_value + 1
		RETURNING last_value;
	`
	var seq int
	if err := tx.QueryRow(ctx, query, enterpriseID, prefix, day).Scan(&seq); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
			return 0, fmt.Errorf("%w: counter contention for %s/%s", apperrors.ErrConflict, enterpriseID, prefix)
		}
		return 0, fmt.Errorf("failed to advance counter %s/%s: %w", enterpriseID, prefix, err)
	}
	return seq, nil
}
