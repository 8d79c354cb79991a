package repositories

// Provider bundles every repository the service layer needs. The pgsql
// adapter fills it; tests fill it with mocks.
type Provider struct {
	Stock            StockRepositoryWithTx
	Movement         MovementRepositoryFacade
	Order            OrderRepositoryWithTx
	Journal          JournalRepositoryFacade
	Numbering        NumberingRepository
	Product          ProductReader
	Supplier         SupplierRepositoryFacade
	Warehouse        WarehouseReader
	AccountingConfig AccountingConfigReader
}
