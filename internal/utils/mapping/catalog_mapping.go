package mapping

import (
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/gescom-erp/gescom_backend/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:      m.ProductID,
		EnterpriseID:   m.EnterpriseID,
		Name:           m.Name,
		UnitOfMeasure:  m.UnitOfMeasure,
		SalePrice:      m.SalePrice,
		StandardCost:   m.StandardCost,
		SalesAccountID: StringOrEmpty(m.SalesAccountID),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier.
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:   m.SupplierID,
		EnterpriseID: m.EnterpriseID,
		Name:         m.Name,
		ContactName:  StringOrEmpty(m.ContactName),
		Phone:        StringOrEmpty(m.Phone),
		Email:        StringOrEmpty(m.Email),
		Address:      StringOrEmpty(m.Address),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWarehouse converts a model Warehouse to a domain Warehouse.
func ToDomainWarehouse(m models.Warehouse) domain.Warehouse {
	return domain.Warehouse{
		WarehouseID:  m.WarehouseID,
		EnterpriseID: m.EnterpriseID,
		Code:         m.Code,
		Name:         m.Name,
		Type:         domain.WarehouseType(m.Type),
		IsActive:     m.IsActive,
		IsDefault:    m.IsDefault,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountingConfig converts a model AccountingConfig to its domain form.
func ToDomainAccountingConfig(m models.AccountingConfig) domain.AccountingConfig {
	return domain.AccountingConfig{
		EnterpriseID:       m.EnterpriseID,
		StockAccountID:     m.StockAccountID,
		PurchasesAccountID: m.PurchasesAccountID,
		SupplierAccountID:  m.SupplierAccountID,
		CashAccountID:      m.CashAccountID,
		BankAccountID:      m.BankAccountID,
		SalesAccountID:     m.SalesAccountID,
	}
}
