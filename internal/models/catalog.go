package models

import "github.com/shopspring/decimal"

// Product mirrors a row of core_products.
type Product struct {
	ProductID      string          `json:"productID"`
	EnterpriseID   string          `json:"enterpriseID"`
	Name           string          `json:"name"`
	UnitOfMeasure  string          `json:"unitOfMeasure"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	StandardCost   decimal.Decimal `json:"standardCost"`
	SalesAccountID *string         `json:"salesAccountID"` // Nullable FK -> compta_comptes
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Supplier mirrors a row of core_fournisseurs.
type Supplier struct {
	SupplierID   string  `json:"supplierID"`
	EnterpriseID string  `json:"enterpriseID"`
	Name         string  `json:"name"`
	ContactName  *string `json:"contactName"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}

// WarehouseType tags the operational role of a warehouse row.
type WarehouseType string

// Warehouse mirrors a row of stock_warehouses.
type Warehouse struct {
	WarehouseID  string        `json:"warehouseID"`
	EnterpriseID string        `json:"enterpriseID"`
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	Type         WarehouseType `json:"type"`
	IsActive     bool          `json:"isActive"`
	IsDefault    bool          `json:"isDefault"`
	AuditFields
}
