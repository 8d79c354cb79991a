package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies one immutable stock change.
type MovementType string

const (
	MovementEntry      MovementType = "ENTRY"
	MovementExit       MovementType = "EXIT"
	MovementTransfer   MovementType = "TRANSFER"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// MovementDirection is the presentation-side direction of a movement as seen
// from an observing warehouse.
type MovementDirection string

const (
	DirectionIn  MovementDirection = "IN"
	DirectionOut MovementDirection = "OUT"
)

// AdjustmentReason identifies why an adjustment was applied. Only
// ReasonInventoryCorrection and ReasonCancelOfReceivedOrder may drive
// on-hand quantity below zero.
type AdjustmentReason string

const (
	ReasonInventoryCorrection   AdjustmentReason = "INVENTORY_CORRECTION"
	ReasonCancelOfReceivedOrder AdjustmentReason = "CANCEL_OF_RECEIVED_ORDER"
)

// Reference prefixes used by compensating movements.
const (
	CancelRefPrefix = "CANCEL-"
	AdjustRefPrefix = "ADJUST-"
)

// StockLine holds the current quantity and valuation of one product in one
// warehouse. Invariants: totalValue = onHand x unitCost within MoneyEpsilon,
// 0 <= reserved <= onHand (outside explicit cancellation overrides).
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

// Available returns the quantity not held by reservations.
func (l *StockLine) Available() decimal.Decimal {
	return l.OnHand.Sub(l.Reserved)
}

// Revalue recomputes the persisted total value from the current quantity and
// unit cost, rounding once.
func (l *StockLine) Revalue() {
	l.TotalValue = RoundMoney(l.OnHand.Mul(l.UnitCost))
}

// Movement is one immutable fact about a stock change. Transfer movements are
// emitted as a linked exit/entry pair sharing the same reference.
type Movement struct {
	MovementID      string          `json:"movementID"`
	EnterpriseID    string          `json:"enterpriseID"`
	ProductID       string          `json:"productID"`
	SourceID        *string         `json:"sourceWarehouseID"`      // Nullable
	DestinationID   *string         `json:"destinationWarehouseID"` // Nullable
	Type            MovementType    `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"` // Signed: positive entry-side, negative exit-side
	UnitCost        decimal.Decimal `json:"unitCost"`
	TotalCost       decimal.Decimal `json:"totalCost"` // Signed
	Reference       string          `json:"reference"`
	Description     string          `json:"description"`
	OccurredAt      time.Time       `json:"occurredAt"`
	RecordedByUser  string          `json:"recordedByUser"`
}

// Validate enforces the per-type shape rules of the movement log.
func (m *Movement) Validate() error {
	switch m.Type {
	case MovementEntry:
		if m.DestinationID == nil || m.SourceID != nil {
			return fmt.Errorf("entry movement must have only a destination warehouse")
		}
		if m.Quantity.Sign() <= 0 {
			return fmt.Errorf("entry movement quantity must be positive")
		}
	case MovementExit:
		if m.SourceID == nil || m.DestinationID != nil {
			return fmt.Errorf("exit movement must have only a source warehouse")
		}
		if m.Quantity.Sign() > 0 {
			return fmt.Errorf("exit movement quantity must not be positive")
		}
	case MovementTransfer:
		if m.SourceID == nil || m.DestinationID == nil {
			return fmt.Errorf("transfer movement must have both warehouses")
		}
	case MovementAdjustment:
		if m.SourceID == nil || m.DestinationID != nil {
			return fmt.Errorf("adjustment movement must have only a source warehouse")
		}
	default:
		return fmt.Errorf("unknown movement type %q", m.Type)
	}
	return nil
}

// NormalizeDirection resolves the movement direction as seen from an
// observing warehouse. For transfers the observer side decides; entries and
// exits follow the warehouse match; adjustments follow the sign of the
// quantity.
func NormalizeDirection(m Movement, observerWarehouseID string) MovementDirection {
	dest := m.DestinationID != nil && *m.DestinationID == observerWarehouseID
	src := m.SourceID != nil && *m.SourceID == observerWarehouseID
	switch m.Type {
	case MovementTransfer:
		if src && !dest {
			return DirectionOut
		}
		return DirectionIn
	case MovementAdjustment:
		if m.Quantity.Sign() >= 0 {
			return DirectionIn
		}
		return DirectionOut
	}
	if dest && !src {
		return DirectionIn
	}
	if src && !dest {
		return DirectionOut
	}
	if m.Quantity.Sign() >= 0 {
		return DirectionIn
	}
	return DirectionOut
}
