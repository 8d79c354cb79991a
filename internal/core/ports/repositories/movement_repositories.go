package repositories

import (
	"context"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MovementFilter narrows a movement-log query. Nil fields are not applied.
type MovementFilter struct {
	ProductID   *string
	WarehouseID *string
	Reference   *string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementWriter appends to the movement log. Movements are never updated or
// deleted; corrections are compensating movements with CANCEL-/ADJUST-
// prefixed references.
type MovementWriter interface {
	// AppendMovementInTx appends one movement, assigning its timestamp when unset.
	AppendMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) (string, error)
}

// MovementReader defines read operations for the movement log.
type MovementReader interface {
	// ListMovements retrieves movements matching the filter, newest first.
	ListMovements(ctx context.Context, enterpriseID string, filter MovementFilter) ([]domain.Movement, error)

	// HasEntryForReferenceInTx reports whether any ENTRY movement already
	// carries the given reference. Used for receive idempotency inside the
	// receiving transaction.
	HasEntryForReferenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID, reference string) (bool, error)
}

// MovementRepositoryFacade combines all movement-log repository interfaces.
type MovementRepositoryFacade interface {
	MovementWriter
	MovementReader
}
