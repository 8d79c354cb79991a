package services

import (
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
)

// ServiceContainer bundles every business service behind its facade.
type ServiceContainer struct {
	Stock     portssvc.StockSvc
	Purchase  portssvc.PurchaseSvc
	Payment   portssvc.PaymentSvc
	Posting   portssvc.PostingSvc
	Numbering portssvc.NumberingSvc
	Warehouse portssvc.WarehouseSvc
	Supplier  portssvc.SupplierSvc
}

// NewServiceContainer wires the services over a repository provider.
func NewServiceContainer(repos portsrepo.Provider, routing map[string]string, orderPrefix string) *ServiceContainer {
	numbering := NewNumberingService(repos.Numbering)
	posting := NewPostingService(repos.Journal, repos.AccountingConfig)
	stock := NewStockService(repos.Stock, repos.Movement)
	warehouse := NewWarehouseService(repos.Warehouse, routing)
	purchase := NewPurchaseService(
		repos.Order,
		repos.Movement,
		repos.Product,
		repos.Supplier,
		repos.Warehouse,
		stock,
		posting,
		numbering,
		orderPrefix,
	)
	payment := NewPaymentService(repos.Order, posting)
	supplier := NewSupplierService(repos.Supplier, repos.Order)

	return &ServiceContainer{
		Stock:     stock,
		Purchase:  purchase,
		Payment:   payment,
		Posting:   posting,
		Numbering: numbering,
		Warehouse: warehouse,
		Supplier:  supplier,
	}
}
