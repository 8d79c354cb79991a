package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderState is the persisted lifecycle state of a purchase order.
type OrderState string

// PaymentStatus is the persisted settlement status of a purchase order.
type PaymentStatus string

// PurchaseOrder mirrors a row of achat_commandes.
type PurchaseOrder struct {
	OrderID        string          `json:"orderID"`
	EnterpriseID   string          `json:"enterpriseID"`
	Number         string          `json:"number"`
	SupplierID     *string         `json:"supplierID"` // Nullable
	WarehouseID    string          `json:"warehouseID"`
	OrderedAt      time.Time       `json:"orderedAt"`
	GlobalDiscount decimal.Decimal `json:"globalDiscount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	State          OrderState      `json:"state"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	AuditFields
}

// OrderLine mirrors a row of achat_commande_lignes.
type OrderLine struct {
	LineID       string          `json:"lineID"`
	OrderID      string          `json:"orderID"`
	ProductID    string          `json:"productID"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
	Ordinal      int             `json:"ordinal"`
}

// PaymentRecord mirrors a row of achat_depenses.
type PaymentRecord struct {
	PaymentID   string          `json:"paymentID"`
	OrderID     string          `json:"orderID"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Voided      bool            `json:"voided"`
	PaidAt      time.Time       `json:"paidAt"`
	AuditFields
}
