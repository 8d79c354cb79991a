package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
)

func balancedJournal() domain.Journal {
	return domain.Journal{
		Entries: []domain.Entry{
			{AccountID: "acc-stock", Debit: dec("100"), Credit: decimal.Zero, Ordinal: 1},
			{AccountID: "acc-supplier", Debit: decimal.Zero, Credit: dec("100"), Ordinal: 2},
		},
	}
}

func TestJournal_Validate(t *testing.T) {
	j := balancedJournal()
	assert.NoError(t, j.Validate())
}

func TestJournal_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Journal)
	}{
		{"single entry", func(j *domain.Journal) { j.Entries = j.Entries[:1] }},
		{"unbalanced", func(j *domain.Journal) { j.Entries[1].Credit = dec("99") }},
		{"negative debit", func(j *domain.Journal) { j.Entries[0].Debit = dec("-100") }},
		{"both sides set", func(j *domain.Journal) { j.Entries[0].Credit = dec("1") }},
		{"neither side set", func(j *domain.Journal) { j.Entries[0].Debit = decimal.Zero }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := balancedJournal()
			tt.mutate(&j)
			assert.Error(t, j.Validate())
		})
	}
}

func TestAccountingConfig_Resolve(t *testing.T) {
	cfg := domain.AccountingConfig{
		StockAccountID:     strPtr("acc-stock"),
		PurchasesAccountID: strPtr("acc-purchases"),
		SupplierAccountID:  strPtr("acc-supplier"),
		CashAccountID:      strPtr("acc-cash"),
		BankAccountID:      strPtr("acc-bank"),
	}

	id, ok := cfg.Resolve(domain.RoleStock)
	assert.True(t, ok)
	assert.Equal(t, "acc-stock", id)

	id, ok = cfg.Resolve(domain.RoleBank)
	assert.True(t, ok)
	assert.Equal(t, "acc-bank", id)

	_, ok = cfg.Resolve(domain.RoleSales)
	assert.False(t, ok)
}

func TestAccountingConfig_Resolve_StockFallsBackToPurchases(t *testing.T) {
	cfg := domain.AccountingConfig{
		PurchasesAccountID: strPtr("acc-purchases"),
	}
	id, ok := cfg.Resolve(domain.RoleStock)
	assert.True(t, ok)
	assert.Equal(t, "acc-purchases", id)

	cfg.PurchasesAccountID = nil
	_, ok = cfg.Resolve(domain.RoleStock)
	assert.False(t, ok)
}

func TestAccountingConfig_Resolve_EmptyStringIsUnmapped(t *testing.T) {
	cfg := domain.AccountingConfig{SupplierAccountID: strPtr("")}
	_, ok := cfg.Resolve(domain.RoleSupplier)
	assert.False(t, ok)
}
