package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
)

// fakeTx stands in for a pgx transaction. The services only hand it through
// to repositories, so none of its methods are ever called.
type fakeTx struct {
	pgx.Tx
}

func newFakeTx() pgx.Tx {
	return fakeTx{}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

// --- Repository mocks ---

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockStockRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) FindStockLine(ctx context.Context, enterpriseID, productID, warehouseID string) (*domain.StockLine, error) {
	args := m.Called(ctx, enterpriseID, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) ListStockByProduct(ctx context.Context, enterpriseID, productID string) ([]domain.StockLine, error) {
	args := m.Called(ctx, enterpriseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) ListStockByWarehouse(ctx context.Context, enterpriseID, warehouseID string) ([]domain.StockLine, error) {
	args := m.Called(ctx, enterpriseID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) ListBelowMinimum(ctx context.Context, enterpriseID string) ([]domain.StockLine, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) AggregateProductCost(ctx context.Context, enterpriseID, productID string) (*domain.ProductCost, error) {
	args := m.Called(ctx, enterpriseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductCost), args.Error(1)
}

func (m *MockStockRepository) FindStockLineForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, productID, warehouseID string) (*domain.StockLine, error) {
	args := m.Called(ctx, tx, enterpriseID, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) FindOrCreateStockLineForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, productID, warehouseID, userID string) (*domain.StockLine, error) {
	args := m.Called(ctx, tx, enterpriseID, productID, warehouseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) SaveStockLineInTx(ctx context.Context, tx pgx.Tx, line domain.StockLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) AppendMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) (string, error) {
	args := m.Called(ctx, tx, movement)
	return args.String(0), args.Error(1)
}

func (m *MockMovementRepository) ListMovements(ctx context.Context, enterpriseID string, filter portsrepo.MovementFilter) ([]domain.Movement, error) {
	args := m.Called(ctx, enterpriseID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) HasEntryForReferenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID, reference string) (bool, error) {
	args := m.Called(ctx, tx, enterpriseID, reference)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOrderRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, enterpriseID, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, enterpriseID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, enterpriseID string, filter portsrepo.OrderFilter) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, enterpriseID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) CountActiveOrdersBySupplier(ctx context.Context, enterpriseID, supplierID string) (int, error) {
	args := m.Called(ctx, enterpriseID, supplierID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) FindOrderForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, tx, enterpriseID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepository) SaveOrderInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ReplaceOrderLinesInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderStateInTx(ctx context.Context, tx pgx.Tx, enterpriseID, orderID string, state domain.OrderState, paymentStatus domain.PaymentStatus, userID string, at time.Time) error {
	args := m.Called(ctx, tx, enterpriseID, orderID, state, paymentStatus, userID, at)
	return args.Error(0)
}

func (m *MockOrderRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockOrderRepository) VoidPaymentInTx(ctx context.Context, tx pgx.Tx, paymentID, description, userID string, at time.Time) error {
	args := m.Called(ctx, tx, paymentID, description, userID, at)
	return args.Error(0)
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	args := m.Called(ctx, tx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournalsByReferenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID string, operation domain.OperationType, reference string) error {
	args := m.Called(ctx, tx, enterpriseID, operation, reference)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, enterpriseID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, enterpriseID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByReference(ctx context.Context, enterpriseID, reference string) ([]domain.Journal, error) {
	args := m.Called(ctx, enterpriseID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

type MockNumberingRepository struct {
	mock.Mock
}

func (m *MockNumberingRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, enterpriseID, prefix string, at time.Time) (int, error) {
	args := m.Called(ctx, tx, enterpriseID, prefix, at)
	return args.Int(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, enterpriseID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, enterpriseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, enterpriseID string, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, enterpriseID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, enterpriseID, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, enterpriseID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) DeactivateSupplier(ctx context.Context, enterpriseID, supplierID, userID string, at time.Time) error {
	args := m.Called(ctx, enterpriseID, supplierID, userID, at)
	return args.Error(0)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindWarehouseByID(ctx context.Context, enterpriseID, warehouseID string) (*domain.Warehouse, error) {
	args := m.Called(ctx, enterpriseID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindWarehouseByCode(ctx context.Context, enterpriseID, code string) (*domain.Warehouse, error) {
	args := m.Called(ctx, enterpriseID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindDefaultWarehouse(ctx context.Context, enterpriseID string) (*domain.Warehouse, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) ListWarehouses(ctx context.Context, enterpriseID string) ([]domain.Warehouse, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

type MockAccountingConfigRepository struct {
	mock.Mock
}

func (m *MockAccountingConfigRepository) FindAccountingConfig(ctx context.Context, enterpriseID string) (*domain.AccountingConfig, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingConfig), args.Error(1)
}

// --- Service mocks for orchestration tests ---

type MockStockSvc struct {
	mock.Mock
}

func (m *MockStockSvc) GetAvailable(ctx context.Context, enterpriseID, productID, warehouseID string) (decimal.Decimal, error) {
	args := m.Called(ctx, enterpriseID, productID, warehouseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockSvc) GetStock(ctx context.Context, enterpriseID, productID string, warehouseID *string) ([]domain.StockLine, error) {
	args := m.Called(ctx, enterpriseID, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

func (m *MockStockSvc) ListStockByWarehouse(ctx context.Context, enterpriseID, warehouseID string) ([]domain.StockLine, error) {
	args := m.Called(ctx, enterpriseID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

func (m *MockStockSvc) GetProductCost(ctx context.Context, enterpriseID, productID string) (*domain.ProductCost, error) {
	args := m.Called(ctx, enterpriseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductCost), args.Error(1)
}

func (m *MockStockSvc) ListMovements(ctx context.Context, enterpriseID string, filter portsrepo.MovementFilter) ([]domain.Movement, error) {
	args := m.Called(ctx, enterpriseID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockStockSvc) ListBelowMinimum(ctx context.Context, enterpriseID string) ([]domain.StockLine, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

func (m *MockStockSvc) ApplyEntry(ctx context.Context, p portssvc.EntryParams) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStockSvc) ApplyExit(ctx context.Context, p portssvc.ExitParams) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStockSvc) ApplyAdjustment(ctx context.Context, p portssvc.AdjustmentParams) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStockSvc) ApplyTransfer(ctx context.Context, p portssvc.TransferParams) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStockSvc) Reserve(ctx context.Context, enterpriseID, productID, warehouseID string, qty decimal.Decimal, userID string) error {
	args := m.Called(ctx, enterpriseID, productID, warehouseID, qty, userID)
	return args.Error(0)
}

func (m *MockStockSvc) Release(ctx context.Context, enterpriseID, productID, warehouseID string, qty decimal.Decimal, userID string) error {
	args := m.Called(ctx, enterpriseID, productID, warehouseID, qty, userID)
	return args.Error(0)
}

func (m *MockStockSvc) ApplyEntryInTx(ctx context.Context, tx pgx.Tx, p portssvc.EntryParams) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *MockStockSvc) ApplyExitInTx(ctx context.Context, tx pgx.Tx, p portssvc.ExitParams) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

type MockPostingSvc struct {
	mock.Mock
}

func (m *MockPostingSvc) PostOrderCreationInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error {
	args := m.Called(ctx, tx, order, userID)
	return args.Error(0)
}

func (m *MockPostingSvc) ReplaceOrderCreationInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error {
	args := m.Called(ctx, tx, order, userID)
	return args.Error(0)
}

func (m *MockPostingSvc) PostPaymentInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, payment domain.PaymentRecord, userID string) error {
	args := m.Called(ctx, tx, order, payment, userID)
	return args.Error(0)
}

func (m *MockPostingSvc) PostOrderReversalInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error {
	args := m.Called(ctx, tx, order, userID)
	return args.Error(0)
}

func (m *MockPostingSvc) PostPaymentReversalInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, payment domain.PaymentRecord, userID string) error {
	args := m.Called(ctx, tx, order, payment, userID)
	return args.Error(0)
}

func (m *MockPostingSvc) Refresh(enterpriseID string) {
	m.Called(enterpriseID)
}

type MockNumberingSvc struct {
	mock.Mock
}

func (m *MockNumberingSvc) NextNumberInTx(ctx context.Context, tx pgx.Tx, enterpriseID, prefix string, at time.Time) (string, error) {
	args := m.Called(ctx, tx, enterpriseID, prefix, at)
	return args.String(0), args.Error(1)
}
