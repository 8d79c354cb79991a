package domain

// WarehouseType tags the operational role of a warehouse.
type WarehouseType string

const (
	WarehousePrincipal   WarehouseType = "PRINCIPAL"
	WarehousePointOfSale WarehouseType = "POINT_OF_SALE"
	WarehouseTransit     WarehouseType = "TRANSIT"
)

// Warehouse represents a physical or logical storage location. At most one
// warehouse per enterprise carries the default flag.
type Warehouse struct {
	WarehouseID  string        `json:"warehouseID"`
	EnterpriseID string        `json:"enterpriseID"`
	Code         string        `json:"code"` // Unique per enterprise
	Name         string        `json:"name"`
	Type         WarehouseType `json:"type"`
	IsActive     bool          `json:"isActive"`
	IsDefault    bool          `json:"isDefault"`
	AuditFields
}
