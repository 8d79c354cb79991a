package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType tags the business event a compta_journaux row records.
type OperationType string

// Journal mirrors a row of compta_journaux.
type Journal struct {
	JournalID    string          `json:"journalID"`
	EnterpriseID string          `json:"enterpriseID"`
	JournalDate  time.Time       `json:"journalDate"`
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	Operation    OperationType   `json:"operation"`
	Reference    string          `json:"reference"`
	AuditFields
}

// Entry mirrors a row of compta_ecritures.
type Entry struct {
	EntryID   string          `json:"entryID"`
	JournalID string          `json:"journalID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Ordinal   int             `json:"ordinal"`
	Label     string          `json:"label"`
}

// AccountingConfig mirrors the single compta_config row of an enterprise.
// All account columns are nullable; an unmapped role stays NULL.
type AccountingConfig struct {
	EnterpriseID       string  `json:"enterpriseID"`
	StockAccountID     *string `json:"stockAccountID"`
	PurchasesAccountID *string `json:"purchasesAccountID"`
	SupplierAccountID  *string `json:"supplierAccountID"`
	CashAccountID      *string `json:"cashAccountID"`
	BankAccountID      *string `json:"bankAccountID"`
	SalesAccountID     *string `json:"salesAccountID"`
}
