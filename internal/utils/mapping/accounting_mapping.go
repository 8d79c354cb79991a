package mapping

import (
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/gescom-erp/gescom_backend/internal/models"
)

// ToModelJournal converts a domain Journal header to its model form. Entries
// are mapped separately.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:    d.JournalID,
		EnterpriseID: d.EnterpriseID,
		JournalDate:  d.JournalDate,
		Label:        d.Label,
		Amount:       d.Amount,
		Operation:    models.OperationType(d.Operation),
		Reference:    d.Reference,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal header to its domain form.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:    m.JournalID,
		EnterpriseID: m.EnterpriseID,
		JournalDate:  m.JournalDate,
		Label:        m.Label,
		Amount:       m.Amount,
		Operation:    domain.OperationType(m.Operation),
		Reference:    m.Reference,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain Entry to a model Entry.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:   d.EntryID,
		JournalID: d.JournalID,
		AccountID: d.AccountID,
		Debit:     d.Debit,
		Credit:    d.Credit,
		Ordinal:   d.Ordinal,
		Label:     d.Label,
	}
}

// ToDomainEntry converts a model Entry to a domain Entry.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:   m.EntryID,
		JournalID: m.JournalID,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Ordinal:   m.Ordinal,
		Label:     m.Label,
	}
}

// ToDomainEntrySlice converts a slice of model Entries to domain Entries.
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
