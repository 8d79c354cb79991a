package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/core/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
)

type PurchaseServiceTestSuite struct {
	suite.Suite
	mockOrderRepo     *MockOrderRepository
	mockMovementRepo  *MockMovementRepository
	mockProductRepo   *MockProductRepository
	mockSupplierRepo  *MockSupplierRepository
	mockWarehouseRepo *MockWarehouseRepository
	mockStockSvc      *MockStockSvc
	mockPostingSvc    *MockPostingSvc
	mockNumberingSvc  *MockNumberingSvc
	service           portssvc.PurchaseSvc

	ctx          context.Context
	tx           pgx.Tx
	enterpriseID string
	userID       string
}

func (s *PurchaseServiceTestSuite) SetupTest() {
	s.mockOrderRepo = new(MockOrderRepository)
	s.mockMovementRepo = new(MockMovementRepository)
	s.mockProductRepo = new(MockProductRepository)
	s.mockSupplierRepo = new(MockSupplierRepository)
	s.mockWarehouseRepo = new(MockWarehouseRepository)
	s.mockStockSvc = new(MockStockSvc)
	s.mockPostingSvc = new(MockPostingSvc)
	s.mockNumberingSvc = new(MockNumberingSvc)
	s.service = services.NewPurchaseService(
		s.mockOrderRepo,
		s.mockMovementRepo,
		s.mockProductRepo,
		s.mockSupplierRepo,
		s.mockWarehouseRepo,
		s.mockStockSvc,
		s.mockPostingSvc,
		s.mockNumberingSvc,
		"",
	)
	s.ctx = context.Background()
	s.tx = newFakeTx()
	s.enterpriseID = "ent-1"
	s.userID = "user-1"
}

func (s *PurchaseServiceTestSuite) expectTx() {
	s.mockOrderRepo.On("Begin", s.ctx).Return(s.tx, nil)
	s.mockOrderRepo.On("Commit", s.ctx, s.tx).Return(nil)
	s.mockOrderRepo.On("Rollback", s.ctx, s.tx).Return(nil)
}

func (s *PurchaseServiceTestSuite) activeWarehouse() *domain.Warehouse {
	return &domain.Warehouse{
		WarehouseID:  "wh-1",
		EnterpriseID: s.enterpriseID,
		Code:         "MAG_1",
		Name:         "Entrepot principal",
		Type:         domain.WarehousePrincipal,
		IsActive:     true,
	}
}

func (s *PurchaseServiceTestSuite) catalogue() map[string]domain.Product {
	return map[string]domain.Product{
		"prod-1": {ProductID: "prod-1", Name: "Cahier A4", IsActive: true},
		"prod-2": {ProductID: "prod-2", Name: "Stylo bleu", IsActive: true},
	}
}

func (s *PurchaseServiceTestSuite) draftOrder(state domain.OrderState) *domain.PurchaseOrder {
	order := &domain.PurchaseOrder{
		OrderID:       "order-1",
		EnterpriseID:  s.enterpriseID,
		Number:        "CMD-20260315-0001",
		WarehouseID:   "wh-1",
		OrderedAt:     time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		GrandTotal:    dec("250.00"),
		State:         state,
		PaymentStatus: domain.PaymentUnpaid,
		Lines: []domain.OrderLine{
			{LineID: "ln-1", OrderID: "order-1", ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("20"), LineTotal: dec("200"), Ordinal: 1},
			{LineID: "ln-2", OrderID: "order-1", ProductID: "prod-2", Quantity: dec("5"), UnitPrice: dec("10"), LineTotal: dec("50"), Ordinal: 2},
		},
	}
	return order
}

// --- Creation ---

func (s *PurchaseServiceTestSuite) TestCreatePurchaseOrder_Success() {
	s.expectTx()
	s.mockWarehouseRepo.On("FindWarehouseByID", s.ctx, s.enterpriseID, "wh-1").Return(s.activeWarehouse(), nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", s.ctx, s.enterpriseID, []string{"prod-1", "prod-2"}).Return(s.catalogue(), nil).Once()
	s.mockNumberingSvc.On("NextNumberInTx", s.ctx, s.tx, s.enterpriseID, "CMD", mock.AnythingOfType("time.Time")).
		Return("CMD-20260315-0001", nil).Once()
	s.mockOrderRepo.On("SaveOrderInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder")).Return(nil).Once()
	s.mockPostingSvc.On("PostOrderCreationInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"), s.userID).Return(nil).Once()

	order, err := s.service.CreatePurchaseOrder(s.ctx, s.enterpriseID, dto.CreateOrderRequest{
		WarehouseID: "wh-1",
		Lines: []dto.OrderLineRequest{
			{ProductID: "prod-1", Quantity: dec("10"), UnitPrice: dec("20")},
			{ProductID: "prod-2", Quantity: dec("5"), UnitPrice: dec("10")},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(order)
	s.Equal("CMD-20260315-0001", order.Number)
	s.Equal(domain.OrderInProgress, order.State)
	s.Equal(domain.PaymentUnpaid, order.PaymentStatus)
	s.True(order.GrandTotal.Equal(dec("250.00")), "grand total %s", order.GrandTotal)
	s.Require().Len(order.Lines, 2)
	s.Equal(1, order.Lines[0].Ordinal)
	s.Equal(2, order.Lines[1].Ordinal)
	s.mockOrderRepo.AssertExpectations(s.T())
	s.mockPostingSvc.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestCreatePurchaseOrder_InactiveWarehouse() {
	warehouse := s.activeWarehouse()
	warehouse.IsActive = false
	s.mockWarehouseRepo.On("FindWarehouseByID", s.ctx, s.enterpriseID, "wh-1").Return(warehouse, nil).Once()

	_, err := s.service.CreatePurchaseOrder(s.ctx, s.enterpriseID, dto.CreateOrderRequest{
		WarehouseID: "wh-1",
		Lines:       []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("10")}},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockOrderRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestCreatePurchaseOrder_InactiveSupplier() {
	s.mockWarehouseRepo.On("FindWarehouseByID", s.ctx, s.enterpriseID, "wh-1").Return(s.activeWarehouse(), nil).Once()
	s.mockSupplierRepo.On("FindSupplierByID", s.ctx, s.enterpriseID, "sup-1").
		Return(&domain.Supplier{SupplierID: "sup-1", Name: "Papeterie Centrale", IsActive: false}, nil).Once()

	_, err := s.service.CreatePurchaseOrder(s.ctx, s.enterpriseID, dto.CreateOrderRequest{
		WarehouseID: "wh-1",
		SupplierID:  strPtr("sup-1"),
		Lines:       []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("10")}},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PurchaseServiceTestSuite) TestCreatePurchaseOrder_UnknownProduct() {
	s.mockWarehouseRepo.On("FindWarehouseByID", s.ctx, s.enterpriseID, "wh-1").Return(s.activeWarehouse(), nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", s.ctx, s.enterpriseID, []string{"prod-missing"}).
		Return(map[string]domain.Product{}, nil).Once()

	_, err := s.service.CreatePurchaseOrder(s.ctx, s.enterpriseID, dto.CreateOrderRequest{
		WarehouseID: "wh-1",
		Lines:       []dto.OrderLineRequest{{ProductID: "prod-missing", Quantity: dec("1"), UnitPrice: dec("10")}},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PurchaseServiceTestSuite) TestCreatePurchaseOrder_NoLines() {
	s.mockWarehouseRepo.On("FindWarehouseByID", s.ctx, s.enterpriseID, "wh-1").Return(s.activeWarehouse(), nil).Once()

	_, err := s.service.CreatePurchaseOrder(s.ctx, s.enterpriseID, dto.CreateOrderRequest{WarehouseID: "wh-1"}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Line edits ---

func (s *PurchaseServiceTestSuite) TestUpdateLines_OnlyInProgressOrders() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.draftOrder(domain.OrderReceived), nil).Once()

	_, err := s.service.UpdatePurchaseOrderLines(s.ctx, s.enterpriseID, "order-1", dto.UpdateOrderLinesRequest{
		Lines: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("10")}},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockOrderRepo.AssertNotCalled(s.T(), "ReplaceOrderLinesInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestUpdateLines_ReplacesLinesAndJournal() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.draftOrder(domain.OrderInProgress), nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", s.ctx, s.enterpriseID, []string{"prod-1"}).Return(s.catalogue(), nil).Once()
	s.mockOrderRepo.On("ReplaceOrderLinesInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder")).Return(nil).Once()
	s.mockPostingSvc.On("ReplaceOrderCreationInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"), s.userID).Return(nil).Once()

	updated, err := s.service.UpdatePurchaseOrderLines(s.ctx, s.enterpriseID, "order-1", dto.UpdateOrderLinesRequest{
		Lines: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: dec("3"), UnitPrice: dec("100")}},
	}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Require().Len(updated.Lines, 1)
	s.True(updated.GrandTotal.Equal(dec("300.00")), "grand total %s", updated.GrandTotal)
	s.mockPostingSvc.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestUpdateLines_TotalBelowPaidAmountRejected() {
	s.expectTx()
	order := s.draftOrder(domain.OrderInProgress)
	order.Payments = []domain.PaymentRecord{{PaymentID: "pay-1", Amount: dec("40.00")}}
	order.PaymentStatus = domain.PaymentPartial
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", s.ctx, s.enterpriseID, []string{"prod-1"}).Return(s.catalogue(), nil).Once()

	_, err := s.service.UpdatePurchaseOrderLines(s.ctx, s.enterpriseID, "order-1", dto.UpdateOrderLinesRequest{
		Lines: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("30")}},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrOverpayment)
	s.mockOrderRepo.AssertNotCalled(s.T(), "ReplaceOrderLinesInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockOrderRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestUpdateLines_RederivesPaymentStatusAgainstNewTotal() {
	s.expectTx()
	order := s.draftOrder(domain.OrderInProgress)
	order.Payments = []domain.PaymentRecord{{PaymentID: "pay-1", Amount: dec("100.00")}}
	order.PaymentStatus = domain.PaymentPartial
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", s.ctx, s.enterpriseID, []string{"prod-1"}).Return(s.catalogue(), nil).Once()
	s.mockOrderRepo.On("ReplaceOrderLinesInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder")).Return(nil).Once()
	s.mockPostingSvc.On("ReplaceOrderCreationInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"), s.userID).Return(nil).Once()

	updated, err := s.service.UpdatePurchaseOrderLines(s.ctx, s.enterpriseID, "order-1", dto.UpdateOrderLinesRequest{
		Lines: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: dec("3"), UnitPrice: dec("100")}},
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.PaymentPartial, updated.PaymentStatus)
	s.Equal(domain.OrderInProgress, updated.State)
	s.mockOrderRepo.AssertNotCalled(s.T(), "UpdateOrderStateInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestUpdateLines_TotalMatchingPaidPromotesToPaid() {
	s.expectTx()
	order := s.draftOrder(domain.OrderInProgress)
	order.Payments = []domain.PaymentRecord{{PaymentID: "pay-1", Amount: dec("100.00")}}
	order.PaymentStatus = domain.PaymentPartial
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", s.ctx, s.enterpriseID, []string{"prod-1"}).Return(s.catalogue(), nil).Once()
	s.mockOrderRepo.On("ReplaceOrderLinesInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder")).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderPaid, domain.PaymentPaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockPostingSvc.On("ReplaceOrderCreationInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"), s.userID).Return(nil).Once()

	updated, err := s.service.UpdatePurchaseOrderLines(s.ctx, s.enterpriseID, "order-1", dto.UpdateOrderLinesRequest{
		Lines: []dto.OrderLineRequest{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("100")}},
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.OrderPaid, updated.State)
	s.Equal(domain.PaymentPaid, updated.PaymentStatus)
	s.mockOrderRepo.AssertExpectations(s.T())
}

// --- Receiving ---

func (s *PurchaseServiceTestSuite) TestReceive_AppliesEveryLineAsEntry() {
	s.expectTx()
	order := s.draftOrder(domain.OrderInProgress)
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockMovementRepo.On("HasEntryForReferenceInTx", s.ctx, s.tx, s.enterpriseID, order.Number).Return(false, nil).Once()
	s.mockStockSvc.On("ApplyEntryInTx", s.ctx, s.tx, mock.MatchedBy(func(p portssvc.EntryParams) bool {
		return p.ProductID == "prod-1" && p.WarehouseID == "wh-1" &&
			p.Quantity.Equal(dec("10")) && p.UnitCost.Equal(dec("20")) && p.Reference == order.Number
	})).Return(nil).Once()
	s.mockStockSvc.On("ApplyEntryInTx", s.ctx, s.tx, mock.MatchedBy(func(p portssvc.EntryParams) bool {
		return p.ProductID == "prod-2" && p.Quantity.Equal(dec("5")) && p.UnitCost.Equal(dec("10"))
	})).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderReceived, domain.PaymentUnpaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	received, err := s.service.ReceivePurchaseOrder(s.ctx, s.enterpriseID, "order-1", s.userID)

	s.Require().NoError(err)
	s.True(received)
	s.mockStockSvc.AssertExpectations(s.T())
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestReceive_AlreadyReceivedStateIsIdempotent() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.draftOrder(domain.OrderReceived), nil).Once()

	received, err := s.service.ReceivePurchaseOrder(s.ctx, s.enterpriseID, "order-1", s.userID)

	s.Require().NoError(err)
	s.False(received)
	s.mockStockSvc.AssertNotCalled(s.T(), "ApplyEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestReceive_ExistingEntryMovementsAreIdempotent() {
	s.expectTx()
	order := s.draftOrder(domain.OrderInProgress)
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockMovementRepo.On("HasEntryForReferenceInTx", s.ctx, s.tx, s.enterpriseID, order.Number).Return(true, nil).Once()

	received, err := s.service.ReceivePurchaseOrder(s.ctx, s.enterpriseID, "order-1", s.userID)

	s.Require().NoError(err)
	s.False(received)
	s.mockStockSvc.AssertNotCalled(s.T(), "ApplyEntryInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockOrderRepo.AssertNotCalled(s.T(), "UpdateOrderStateInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestReceive_FullyPaidOrderLandsOnPaid() {
	s.expectTx()
	order := s.draftOrder(domain.OrderInProgress)
	order.PaymentStatus = domain.PaymentPaid
	order.Payments = []domain.PaymentRecord{{PaymentID: "pay-1", Amount: dec("250.00"), Method: "cash"}}
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockMovementRepo.On("HasEntryForReferenceInTx", s.ctx, s.tx, s.enterpriseID, order.Number).Return(false, nil).Once()
	s.mockStockSvc.On("ApplyEntryInTx", s.ctx, s.tx, mock.AnythingOfType("services.EntryParams")).Return(nil).Twice()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderPaid, domain.PaymentPaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	received, err := s.service.ReceivePurchaseOrder(s.ctx, s.enterpriseID, "order-1", s.userID)

	s.Require().NoError(err)
	s.True(received)
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestReceive_CancelledOrderRejected() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.draftOrder(domain.OrderCancelled), nil).Once()

	_, err := s.service.ReceivePurchaseOrder(s.ctx, s.enterpriseID, "order-1", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- Cancellation ---

func (s *PurchaseServiceTestSuite) TestCancel_PaidOrderIsRefused() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.draftOrder(domain.OrderPaid), nil).Once()

	err := s.service.CancelPurchaseOrder(s.ctx, s.enterpriseID, "order-1", "wrong supplier", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrCannotCancelPaid)
	s.mockPostingSvc.AssertNotCalled(s.T(), "PostOrderReversalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PurchaseServiceTestSuite) TestCancel_AlreadyCancelled() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.draftOrder(domain.OrderCancelled), nil).Once()

	err := s.service.CancelPurchaseOrder(s.ctx, s.enterpriseID, "order-1", "", s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PurchaseServiceTestSuite) TestCancel_InProgressReversesJournalOnly() {
	s.expectTx()
	order := s.draftOrder(domain.OrderInProgress)
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockPostingSvc.On("PostOrderReversalInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"), s.userID).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderCancelled, domain.PaymentUnpaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.CancelPurchaseOrder(s.ctx, s.enterpriseID, "order-1", "duplicate", s.userID)

	s.Require().NoError(err)
	s.mockStockSvc.AssertNotCalled(s.T(), "ApplyExitInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockPostingSvc.AssertExpectations(s.T())
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *PurchaseServiceTestSuite) TestCancel_ReceivedCompensatesStockAndVoidsPayments() {
	s.expectTx()
	order := s.draftOrder(domain.OrderReceived)
	order.PaymentStatus = domain.PaymentPartial
	order.Payments = []domain.PaymentRecord{
		{PaymentID: "pay-1", OrderID: "order-1", Amount: dec("100.00"), Method: "cash"},
		{PaymentID: "pay-voided", OrderID: "order-1", Amount: dec("0"), Method: "cash", Voided: true},
	}
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockStockSvc.On("ApplyExitInTx", s.ctx, s.tx, mock.MatchedBy(func(p portssvc.ExitParams) bool {
		return p.AllowNegative && p.Reason == domain.ReasonCancelOfReceivedOrder &&
			p.Reference == domain.CancelRefPrefix+order.Number
	})).Return(nil).Twice()
	s.mockPostingSvc.On("PostOrderReversalInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"), s.userID).Return(nil).Once()
	s.mockOrderRepo.On("VoidPaymentInTx", s.ctx, s.tx, "pay-1", mock.MatchedBy(func(description string) bool {
		return strings.Contains(description, "100") && strings.Contains(description, "wrong delivery")
	}), s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockPostingSvc.On("PostPaymentReversalInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"),
		mock.MatchedBy(func(p domain.PaymentRecord) bool { return p.PaymentID == "pay-1" }), s.userID).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderCancelled, domain.PaymentUnpaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.CancelPurchaseOrder(s.ctx, s.enterpriseID, "order-1", "wrong delivery", s.userID)

	s.Require().NoError(err)
	s.mockStockSvc.AssertExpectations(s.T())
	s.mockPostingSvc.AssertExpectations(s.T())
	s.mockOrderRepo.AssertExpectations(s.T())
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
