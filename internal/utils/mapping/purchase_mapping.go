package mapping

import (
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/gescom-erp/gescom_backend/internal/models"
)

// ToModelPurchaseOrder converts a domain PurchaseOrder header to its model form.
// Lines and payments are mapped separately.
func ToModelPurchaseOrder(d domain.PurchaseOrder) models.PurchaseOrder {
	return models.PurchaseOrder{
		OrderID:        d.OrderID,
		EnterpriseID:   d.EnterpriseID,
		Number:         d.Number,
		SupplierID:     d.SupplierID,
		WarehouseID:    d.WarehouseID,
		OrderedAt:      d.OrderedAt,
		GlobalDiscount: d.GlobalDiscount,
		GrandTotal:     d.GrandTotal,
		State:          models.OrderState(d.State),
		PaymentStatus:  models.PaymentStatus(d.PaymentStatus),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseOrder converts a model PurchaseOrder header to its domain form.
func ToDomainPurchaseOrder(m models.PurchaseOrder) domain.PurchaseOrder {
	return domain.PurchaseOrder{
		OrderID:        m.OrderID,
		EnterpriseID:   m.EnterpriseID,
		Number:         m.Number,
		SupplierID:     m.SupplierID,
		WarehouseID:    m.WarehouseID,
		OrderedAt:      m.OrderedAt,
		GlobalDiscount: m.GlobalDiscount,
		GrandTotal:     m.GrandTotal,
		State:          domain.OrderState(m.State),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderLine converts a domain OrderLine to a model OrderLine.
func ToModelOrderLine(d domain.OrderLine) models.OrderLine {
	return models.OrderLine{
		LineID:       d.LineID,
		OrderID:      d.OrderID,
		ProductID:    d.ProductID,
		Quantity:     d.Quantity,
		UnitPrice:    d.UnitPrice,
		LineDiscount: d.LineDiscount,
		LineTotal:    d.LineTotal,
		Ordinal:      d.Ordinal,
	}
}

// ToDomainOrderLine converts a model OrderLine to a domain OrderLine.
func ToDomainOrderLine(m models.OrderLine) domain.OrderLine {
	return domain.OrderLine{
		LineID:       m.LineID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		LineDiscount: m.LineDiscount,
		LineTotal:    m.LineTotal,
		Ordinal:      m.Ordinal,
	}
}

// ToModelPaymentRecord converts a domain PaymentRecord to its model form.
func ToModelPaymentRecord(d domain.PaymentRecord) models.PaymentRecord {
	return models.PaymentRecord{
		PaymentID:   d.PaymentID,
		OrderID:     d.OrderID,
		Amount:      d.Amount,
		Method:      d.Method,
		Reference:   d.Reference,
		Description: d.Description,
		Voided:      d.Voided,
		PaidAt:      d.PaidAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentRecord converts a model PaymentRecord to its domain form.
func ToDomainPaymentRecord(m models.PaymentRecord) domain.PaymentRecord {
	return domain.PaymentRecord{
		PaymentID:   m.PaymentID,
		OrderID:     m.OrderID,
		Amount:      m.Amount,
		Method:      m.Method,
		Reference:   m.Reference,
		Description: m.Description,
		Voided:      m.Voided,
		PaidAt:      m.PaidAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
