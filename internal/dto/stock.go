package dto

import (
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest moves stock between two warehouses atomically.
type TransferRequest struct {
	ProductID     string          `json:"productID" binding:"required"`
	SourceID      string          `json:"sourceWarehouseID" binding:"required"`
	DestinationID string          `json:"destinationWarehouseID" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
}

// AdjustmentRequest applies a signed quantity correction to a stock line.
type AdjustmentRequest struct {
	ProductID   string           `json:"productID" binding:"required"`
	WarehouseID string           `json:"warehouseID" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost    *decimal.Decimal `json:"unitCost"`
	Reason      string           `json:"reason" binding:"required"`
	Description string           `json:"description"`
}

// ReservationRequest reserves or releases available stock.
type ReservationRequest struct {
	ProductID   string          `json:"productID" binding:"required"`
	WarehouseID string          `json:"warehouseID" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// StockLineResponse is the read view of one (product, warehouse) stock line.
type StockLineResponse struct {
	ProductID      string          `json:"productID"`
	WarehouseID    string          `json:"warehouseID"`
	OnHand         decimal.Decimal `json:"onHand"`
	Reserved       decimal.Decimal `json:"reserved"`
	Available      decimal.Decimal `json:"available"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	MinimumStock   decimal.Decimal `json:"minimumStock"`
	LastMovementAt *time.Time      `json:"lastMovementAt"`
}

// ToStockLineResponse converts a domain.StockLine to its response DTO.
func ToStockLineResponse(l *domain.StockLine) StockLineResponse {
	return StockLineResponse{
		ProductID:      l.ProductID,
		WarehouseID:    l.WarehouseID,
		OnHand:         l.OnHand,
		Reserved:       l.Reserved,
		Available:      l.Available(),
		UnitCost:       l.UnitCost,
		TotalValue:     l.TotalValue,
		MinimumStock:   l.MinimumStock,
		LastMovementAt: l.LastMovementAt,
	}
}

// ToStockLineResponses converts a slice of stock lines.
func ToStockLineResponses(lines []domain.StockLine) []StockLineResponse {
	responses := make([]StockLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToStockLineResponse(&lines[i])
	}
	return responses
}

// MovementResponse mirrors one movement-log record.
type MovementResponse struct {
	MovementID    string          `json:"movementID"`
	ProductID     string          `json:"productID"`
	SourceID      *string         `json:"sourceWarehouseID"`
	DestinationID *string         `json:"destinationWarehouseID"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Direction     string          `json:"direction,omitempty"` // Present when an observer warehouse was given
}

// ToMovementResponse converts a movement, normalizing its direction for the
// observer warehouse when one is provided.
func ToMovementResponse(m *domain.Movement, observerWarehouseID *string) MovementResponse {
	resp := MovementResponse{
		MovementID:    m.MovementID,
		ProductID:     m.ProductID,
		SourceID:      m.SourceID,
		DestinationID: m.DestinationID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		Reference:     m.Reference,
		Description:   m.Description,
		OccurredAt:    m.OccurredAt,
	}
	if observerWarehouseID != nil {
		resp.Direction = string(domain.NormalizeDirection(*m, *observerWarehouseID))
	}
	return resp
}

// WarehouseResponse mirrors one warehouse.
type WarehouseResponse struct {
	WarehouseID string `json:"warehouseID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	IsActive    bool   `json:"isActive"`
	IsDefault   bool   `json:"isDefault"`
}

// ToWarehouseResponse converts a domain.Warehouse to its response DTO.
func ToWarehouseResponse(w *domain.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		WarehouseID: w.WarehouseID,
		Code:        w.Code,
		Name:        w.Name,
		Type:        string(w.Type),
		IsActive:    w.IsActive,
		IsDefault:   w.IsDefault,
	}
}
