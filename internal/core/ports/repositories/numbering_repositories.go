package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// NumberingRepository hands out per-day document sequence numbers backed by a
// counter row locked for the duration of the calling transaction, so no two
// committers ever observe the same sequence value.
type NumberingRepository interface {
	// NextSequenceInTx increments and returns the counter for
	// (enterprise, prefix, day of at).
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID, prefix string, at time.Time) (int, error)
}
