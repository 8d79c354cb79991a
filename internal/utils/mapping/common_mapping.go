package mapping

import (
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/gescom-erp/gescom_backend/internal/models"
)

// ToModelAuditFields converts domain audit fields to model audit fields.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts model audit fields to domain audit fields.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// NullableString maps an empty string to a NULL column value.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringOrEmpty maps a NULL column value to an empty string.
func StringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
