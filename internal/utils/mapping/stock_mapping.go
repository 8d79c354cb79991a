package mapping

import (
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/gescom-erp/gescom_backend/internal/models"
)

// ToModelStockLine converts a domain StockLine to a model StockLine.
func ToModelStockLine(d domain.StockLine) models.StockLine {
	return models.StockLine{
		StockLineID:    d.StockLineID,
		EnterpriseID:   d.EnterpriseID,
		ProductID:      d.ProductID,
		WarehouseID:    d.WarehouseID,
		OnHand:         d.OnHand,
		Reserved:       d.Reserved,
		UnitCost:       d.UnitCost,
		TotalValue:     d.TotalValue,
		MinimumStock:   d.MinimumStock,
		LastMovementAt: d.LastMovementAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockLine converts a model StockLine to a domain StockLine.
func ToDomainStockLine(m models.StockLine) domain.StockLine {
	return domain.StockLine{
		StockLineID:    m.StockLineID,
		EnterpriseID:   m.EnterpriseID,
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		OnHand:         m.OnHand,
		Reserved:       m.Reserved,
		UnitCost:       m.UnitCost,
		TotalValue:     m.TotalValue,
		MinimumStock:   m.MinimumStock,
		LastMovementAt: m.LastMovementAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMovement converts a domain Movement to a model Movement.
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:    d.MovementID,
		EnterpriseID:  d.EnterpriseID,
		ProductID:     d.ProductID,
		SourceID:      d.SourceID,
		DestinationID: d.DestinationID,
		Type:          models.MovementType(d.Type),
		Quantity:      d.Quantity,
		UnitCost:      d.UnitCost,
		TotalCost:     d.TotalCost,
		Reference:     d.Reference,
		Description:   d.Description,
		OccurredAt:    d.OccurredAt,
		RecordedBy:    d.RecordedByUser,
	}
}

// ToDomainMovement converts a model Movement to a domain Movement.
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:     m.MovementID,
		EnterpriseID:   m.EnterpriseID,
		ProductID:      m.ProductID,
		SourceID:       m.SourceID,
		DestinationID:  m.DestinationID,
		Type:           domain.MovementType(m.Type),
		Quantity:       m.Quantity,
		UnitCost:       m.UnitCost,
		TotalCost:      m.TotalCost,
		Reference:      m.Reference,
		Description:    m.Description,
		OccurredAt:     m.OccurredAt,
		RecordedByUser: m.RecordedBy,
	}
}

// ToDomainMovementSlice converts a slice of model Movements to domain Movements.
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
