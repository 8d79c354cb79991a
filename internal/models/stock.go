package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLine mirrors a row of stock_produits_entrepot, the per (product,
// warehouse) quantity and valuation record.
type StockLine struct {
	StockLineID    string          `json:"stockLineID"`
	EnterpriseID   string          `json:"enterpriseID"`
	ProductID      string          `json:"productID"`
	WarehouseID    string          `json:"warehouseID"`
	OnHand         decimal.Decimal `json:"onHand"`
	Reserved       decimal.Decimal `json:"reserved"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	MinimumStock   decimal.Decimal `json:"minimumStock"`
	LastMovementAt *time.Time      `json:"lastMovementAt"` // Nullable
	AuditFields
}

// MovementType classifies a stock_mouvements row.
type MovementType string

// Movement mirrors a row of stock_mouvements. Rows are append-only.
type Movement struct {
	MovementID    string          `json:"movementID"`
	EnterpriseID  string          `json:"enterpriseID"`
	ProductID     string          `json:"productID"`
	SourceID      *string         `json:"sourceWarehouseID"`      // Nullable
	DestinationID *string         `json:"destinationWarehouseID"` // Nullable
	Type          MovementType    `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	OccurredAt    time.Time       `json:"occurredAt"`
	RecordedBy    string          `json:"recordedBy"`
}
