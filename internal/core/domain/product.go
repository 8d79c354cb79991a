package domain

import "github.com/shopspring/decimal"

// Product represents a stockable article. The purchase cost shown on a
// product is derived on demand from its stock lines (quantity-weighted mean
// across warehouses); the StockLine is the single source of truth for
// valuation and the engine never edits a stored product cost.
type Product struct {
	ProductID      string          `json:"productID"`
	EnterpriseID   string          `json:"enterpriseID"`
	Name           string          `json:"name"`
	UnitOfMeasure  string          `json:"unitOfMeasure"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	StandardCost   decimal.Decimal `json:"standardCost"`
	SalesAccountID string          `json:"salesAccountID"` // Nullable FK -> compta_comptes
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// ProductCost is the derived valuation of one product across warehouses.
type ProductCost struct {
	ProductID  string          `json:"productID"`
	OnHand     decimal.Decimal `json:"onHand"`
	UnitCost   decimal.Decimal `json:"unitCost"` // quantity-weighted mean of stock-line costs
	TotalValue decimal.Decimal `json:"totalValue"`
}
