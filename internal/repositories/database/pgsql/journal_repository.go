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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for accounting journals.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_id, enterprise_id, journal_date, label, amount, operation_type, reference,
	created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row rowScanner) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.EnterpriseID,
		&m.JournalDate,
		&m.Label,
		&m.Amount,
		&m.Operation,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournalInTx persists a journal header and its entries in the caller's
// transaction, so the journal commits or rolls back with the business event
// it records.
func (r *PgxJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	headerQuery := `
		INSERT INTO compta_journaux (
			journal_id, enterprise_id, journal_date, label, amount, operation_type, reference,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.JournalID,
		m.EnterpriseID,
		m.JournalDate,
		m.Label,
		m.Amount,
		m.Operation,
		m.Reference,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}

	entryQuery := `
		INSERT INTO compta_ecritures (entry_id, journal_id, account_id, debit, credit, ordinal, label)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, entry := range journal.Entries {
		me := mapping.ToModelEntry(entry)
		batch.Queue(entryQuery, me.EntryID, me.JournalID, me.AccountID, me.Debit, me.Credit, me.Ordinal, me.Label)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range journal.Entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert entry of journal %s: %w", m.JournalID, err)
		}
	}
	return nil
}

// DeleteJournalsByReferenceInTx removes the journals (and their entries)
// recorded for one operation type and business reference. Entries go via the
// ON DELETE CASCADE of compta_ecritures.
func (r *PgxJournalRepository) DeleteJournalsByReferenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID string, operation domain.OperationType, reference string) error {
	query := `
		DELETE FROM compta_journaux
		WHERE enterprise_id = $1 AND operation_type = $2 AND reference = $3;
	`
	if _, err := tx.Exec(ctx, query, enterpriseID, string(operation), reference); err != nil {
		return fmt.Errorf("failed to delete journals for reference %s: %w", reference, err)
	}
	return nil
}

func (r *PgxJournalRepository) fetchEntries(ctx context.Context, journalID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, journal_id, account_id, debit, credit, ordinal, label
		FROM compta_ecritures
		WHERE journal_id = $1
		ORDER BY ordinal;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of journal %s: %w", journalID, err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var m models.Entry
		if err := rows.Scan(&m.EntryID, &m.JournalID, &m.AccountID, &m.Debit, &m.Credit, &m.Ordinal, &m.Label); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

// FindJournalByID retrieves a journal with its entries.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, enterpriseID, journalID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM compta_journaux
		WHERE enterprise_id = $1 AND journal_id = $2;
	`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, enterpriseID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	journal := mapping.ToDomainJournal(m)
	if journal.Entries, err = r.fetchEntries(ctx, journalID); err != nil {
		return nil, err
	}
	return &journal, nil
}

// FindJournalsByReference retrieves the journals recorded against one
// business reference, with entries, oldest first.
func (r *PgxJournalRepository) FindJournalsByReference(ctx context.Context, enterpriseID, reference string) ([]domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM compta_journaux
		WHERE enterprise_id = $1 AND reference = $2
		ORDER BY created_at, journal_id;
	`
	rows, err := r.Pool.Query(ctx, query, enterpriseID, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for reference %s: %w", reference, err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range journals {
		if journals[i].Entries, err = r.fetchEntries(ctx, journals[i].JournalID); err != nil {
			return nil, err
		}
	}
	return journals, nil
}
