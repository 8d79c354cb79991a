package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/gescom-erp/gescom_backend/internal/models"
	"github.com/gescom-erp/gescom_backend/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for the movement log.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// AppendMovementInTx appends one movement row. The log is insert-only; no
// update or delete statement exists in this repository.
func (r *PgxMovementRepository) AppendMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) (string, error) {
	m := mapping.ToModelMovement(movement)
	if m.MovementID == "" {
		m.MovementID = uuid.NewString()
	}
	if m.OccurredAt.IsZero() {
		m.OccurredAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stock_mouvements (
			movement_id, enterprise_id, product_id,
			source_warehouse_id, destination_warehouse_id,
			movement_type, quantity, unit_cost, total_cost,
			reference, description, occurred_at, recorded_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.EnterpriseID,
		m.ProductID,
		m.SourceID,
		m.DestinationID,
		m.Type,
		m.Quantity,
		m.UnitCost,
		m.TotalCost,
		m.Reference,
		m.Description,
		m.OccurredAt,
		m.RecordedBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to append movement %s: %w", m.MovementID, err)
	}
	return m.MovementID, nil
}

// ListMovements retrieves movements matching the filter, newest first.
func (r *PgxMovementRepository) ListMovements(ctx context.Context, enterpriseID string, filter portsrepo.MovementFilter) ([]domain.Movement, error) {
	query := `
		SELECT movement_id, enterprise_id, product_id,
		       source_warehouse_id, destination_warehouse_id,
		       movement_type, quantity, unit_cost, total_cost,
		       reference, description, occurred_at, recorded_by
		FROM stock_mouvements
		WHERE enterprise_id = $1
	`
	args := []any{enterpriseID}
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		query += fmt.Sprintf(" AND (source_warehouse_id = $%d OR destination_warehouse_id = $%d)", len(args), len(args))
	}
	if filter.Reference != nil {
		args = append(args, *filter.Reference)
		query += fmt.Sprintf(" AND reference = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND occurred_at < $%d", len(args))
	}
	query += " ORDER BY occurred_at DESC, movement_id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	var ms []models.Movement
	for rows.Next() {
		var m models.Movement
		err := rows.Scan(
			&m.MovementID,
			&m.EnterpriseID,
			&m.ProductID,
			&m.SourceID,
			&m.DestinationID,
			&m.Type,
			&m.Quantity,
			&m.UnitCost,
			&m.TotalCost,
			&m.Reference,
			&m.Description,
			&m.OccurredAt,
			&m.RecordedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading movements: %w", err)
	}
	return mapping.ToDomainMovementSlice(ms), nil
}

// HasEntryForReferenceInTx reports whether any ENTRY movement already carries
// the given reference.
func (r *PgxMovementRepository) HasEntryForReferenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID, reference string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_mouvements
			WHERE enterprise_id = $1 AND reference = $2 AND movement_type = $3
		);
	`
	var exists bool
	if err := tx.QueryRow(ctx, query, enterpriseID, reference, string(domain.MovementEntry)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check entry movements for reference %s: %w", reference, err)
	}
	return exists, nil
}
