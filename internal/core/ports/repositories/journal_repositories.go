package repositories

import (
	"context"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalWriter defines in-transaction write operations for accounting
// journals. Journals are written in the same transaction as the business
// event they record.
type JournalWriter interface {
	// SaveJournalInTx persists a journal and its entries.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error

	// DeleteJournalsByReferenceInTx removes the journals (and their entries)
	// recorded for one operation type and business reference. Used by the
	// order-edit policy which replaces the creation journal wholesale.
	DeleteJournalsByReferenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID string, operation domain.OperationType, reference string) error
}

// JournalReader defines read operations for accounting journals.
type JournalReader interface {
	// FindJournalByID retrieves a journal with its entries.
	FindJournalByID(ctx context.Context, enterpriseID, journalID string) (*domain.Journal, error)

	// FindJournalsByReference retrieves the journals recorded against one
	// business reference, with entries, oldest first.
	FindJournalsByReference(ctx context.Context, enterpriseID, reference string) ([]domain.Journal, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalWriter
	JournalReader
}
