package domain

// Supplier represents a purchasing counterparty. Soft-deletable only while no
// non-cancelled order references it.
type Supplier struct {
	SupplierID   string `json:"supplierID"`
	EnterpriseID string `json:"enterpriseID"`
	Name         string `json:"name"`
	ContactName  string `json:"contactName"` // Nullable
	Phone        string `json:"phone"`       // Nullable
	Email        string `json:"email"`       // Nullable
	Address      string `json:"address"`     // Nullable
	IsActive     bool   `json:"isActive"`
	AuditFields
}
