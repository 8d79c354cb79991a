package pgsql

import (
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.Provider {
	return portsrepo.Provider{
		Stock:            newPgxStockRepository(dbPool),
		Movement:         newPgxMovementRepository(dbPool),
		Order:            newPgxOrderRepository(dbPool),
		Journal:          newPgxJournalRepository(dbPool),
		Numbering:        newPgxNumberingRepository(dbPool),
		Product:          newPgxProductRepository(dbPool),
		Supplier:         newPgxSupplierRepository(dbPool),
		Warehouse:        newPgxWarehouseRepository(dbPool),
		AccountingConfig: newPgxAccountingConfigRepository(dbPool),
	}
}
