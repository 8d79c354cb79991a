package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OperationType tags the business event a journal records.
type OperationType string

const (
	OpOrderCreation       OperationType = "ORDER_CREATION"
	OpPayment             OperationType = "PAYMENT"
	OpOrderCancellation   OperationType = "ORDER_CANCELLATION"
	OpPaymentCancellation OperationType = "PAYMENT_CANCELLATION"
)

// AccountRole names the business role an entry posts to; the enterprise
// accounting configuration resolves it to a concrete account.
type AccountRole string

const (
	RoleStock     AccountRole = "STOCK"
	RolePurchases AccountRole = "PURCHASES"
	RoleSupplier  AccountRole = "SUPPLIER"
	RoleCash      AccountRole = "CASH"
	RoleBank      AccountRole = "BANK"
	RoleSales     AccountRole = "SALES"
)

// Journal is a balanced double-entry record of one business event.
type Journal struct {
	JournalID    string          `json:"journalID"`
	EnterpriseID string          `json:"enterpriseID"`
	JournalDate  time.Time       `json:"journalDate"`
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	Operation    OperationType   `json:"operation"`
	Reference    string          `json:"reference"` // Business document reference (order number, payment id)
	Entries      []Entry         `json:"entries,omitempty"`
	AuditFields
}

// Entry is one debit or credit row of a journal. Exactly one of Debit and
// Credit is nonzero.
type Entry struct {
	EntryID   string          `json:"entryID"`
	JournalID string          `json:"journalID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Ordinal   int             `json:"ordinal"`
	Label     string          `json:"label"`
}

// Validate checks the double-entry invariants: at least two entries, each
// entry one-sided and non-negative, and total debits equal to total credits.
func (j *Journal) Validate() error {
	if len(j.Entries) < 2 {
		return fmt.Errorf("journal must carry at least two entries")
	}
	debits, credits := decimal.Zero, decimal.Zero
	for i := range j.Entries {
		e := &j.Entries[i]
		if e.Debit.Sign() < 0 || e.Credit.Sign() < 0 {
			return fmt.Errorf("entry %d: debit and credit must not be negative", e.Ordinal)
		}
		if e.Debit.Sign() != 0 && e.Credit.Sign() != 0 {
			return fmt.Errorf("entry %d: exactly one of debit and credit may be nonzero", e.Ordinal)
		}
		if e.Debit.Sign() == 0 && e.Credit.Sign() == 0 {
			return fmt.Errorf("entry %d: entry must carry a debit or a credit", e.Ordinal)
		}
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("journal is unbalanced: debits %s, credits %s", debits, credits)
	}
	return nil
}

// AccountingConfig maps business roles to concrete accounts for one
// enterprise. Pointer fields are unmapped roles.
type AccountingConfig struct {
	EnterpriseID       string  `json:"enterpriseID"`
	StockAccountID     *string `json:"stockAccountID"`
	PurchasesAccountID *string `json:"purchasesAccountID"`
	SupplierAccountID  *string `json:"supplierAccountID"`
	CashAccountID      *string `json:"cashAccountID"`
	BankAccountID      *string `json:"bankAccountID"`
	SalesAccountID     *string `json:"salesAccountID"`
}

// Resolve returns the account mapped to a role. The stock role falls back to
// the purchases account when no stock account is configured.
func (c *AccountingConfig) Resolve(role AccountRole) (string, bool) {
	pick := func(p *string) (string, bool) {
		if p == nil || *p == "" {
			return "", false
		}
		return *p, true
	}
	switch role {
	case RoleStock:
		if id, ok := pick(c.StockAccountID); ok {
			return id, true
		}
		return pick(c.PurchasesAccountID)
	case RolePurchases:
		return pick(c.PurchasesAccountID)
	case RoleSupplier:
		return pick(c.SupplierAccountID)
	case RoleCash:
		return pick(c.CashAccountID)
	case RoleBank:
		return pick(c.BankAccountID)
	case RoleSales:
		return pick(c.SalesAccountID)
	}
	return "", false
}
