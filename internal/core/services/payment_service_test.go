package services_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/core/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockOrderRepo  *MockOrderRepository
	mockPostingSvc *MockPostingSvc
	service        portssvc.PaymentSvc

	ctx          context.Context
	tx           pgx.Tx
	enterpriseID string
	userID       string
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockOrderRepo = new(MockOrderRepository)
	s.mockPostingSvc = new(MockPostingSvc)
	s.service = services.NewPaymentService(s.mockOrderRepo, s.mockPostingSvc)
	s.ctx = context.Background()
	s.tx = newFakeTx()
	s.enterpriseID = "ent-1"
	s.userID = "user-1"
}

func (s *PaymentServiceTestSuite) expectTx() {
	s.mockOrderRepo.On("Begin", s.ctx).Return(s.tx, nil)
	s.mockOrderRepo.On("Commit", s.ctx, s.tx).Return(nil)
	s.mockOrderRepo.On("Rollback", s.ctx, s.tx).Return(nil)
}

func (s *PaymentServiceTestSuite) order(state domain.OrderState, total string, payments ...domain.PaymentRecord) *domain.PurchaseOrder {
	return &domain.PurchaseOrder{
		OrderID:      "order-1",
		EnterpriseID: s.enterpriseID,
		Number:       "CMD-20260315-0001",
		GrandTotal:   dec(total),
		State:        state,
		Payments:     payments,
	}
}

func (s *PaymentServiceTestSuite) TestApplyPayment_NonPositiveAmountRejected() {
	_, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: decimal.Zero, Method: "cash"}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockOrderRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *PaymentServiceTestSuite) TestApplyPayment_MethodRequired() {
	_, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("10")}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) TestApplyPayment_PaidOrderRefused() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.order(domain.OrderPaid, "250.00"), nil).Once()

	_, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("10"), Method: "cash"}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PaymentServiceTestSuite) TestApplyPayment_CancelledOrderRefused() {
	s.expectTx()
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.order(domain.OrderCancelled, "250.00"), nil).Once()

	_, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("10"), Method: "cash"}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PaymentServiceTestSuite) TestApplyPayment_OverpaymentRefused() {
	s.expectTx()
	existing := domain.PaymentRecord{PaymentID: "pay-0", Amount: dec("200.00")}
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").
		Return(s.order(domain.OrderInProgress, "250.00", existing), nil).Once()

	_, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("50.01"), Method: "cash"}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrOverpayment)
	s.mockOrderRepo.AssertNotCalled(s.T(), "SavePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockOrderRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestApplyPayment_VoidedPaymentsDoNotCountTowardTheDue() {
	s.expectTx()
	voided := domain.PaymentRecord{PaymentID: "pay-0", Amount: dec("200.00"), Voided: true}
	order := s.order(domain.OrderInProgress, "250.00", voided)
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockOrderRepo.On("SavePaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PaymentRecord")).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderInProgress, domain.PaymentPartial, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockPostingSvc.On("PostPaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"),
		mock.AnythingOfType("domain.PaymentRecord"), s.userID).Return(nil).Once()

	payment, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("200.00"), Method: "cash"}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(payment)
	s.True(payment.Amount.Equal(dec("200.00")))
}

func (s *PaymentServiceTestSuite) TestApplyPayment_PartialPaymentKeepsState() {
	s.expectTx()
	order := s.order(domain.OrderInProgress, "250.00")
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockOrderRepo.On("SavePaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PaymentRecord")).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderInProgress, domain.PaymentPartial, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockPostingSvc.On("PostPaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"),
		mock.AnythingOfType("domain.PaymentRecord"), s.userID).Return(nil).Once()

	payment, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("100.00"), Method: "cash", Reference: "RCPT-1"}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(payment)
	s.NotEmpty(payment.PaymentID)
	s.Equal("order-1", payment.OrderID)
	s.False(payment.Voided)
	s.mockOrderRepo.AssertExpectations(s.T())
	s.mockPostingSvc.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestApplyPayment_CompletingPaymentPromotesReceivedOrder() {
	s.expectTx()
	existing := domain.PaymentRecord{PaymentID: "pay-0", Amount: dec("150.00")}
	order := s.order(domain.OrderReceived, "250.00", existing)
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockOrderRepo.On("SavePaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PaymentRecord")).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderPaid, domain.PaymentPaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockPostingSvc.On("PostPaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"),
		mock.AnythingOfType("domain.PaymentRecord"), s.userID).Return(nil).Once()

	payment, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("100.00"), Method: "virement"}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(payment)
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestApplyPayment_CompletingPaymentPromotesInProgressOrder() {
	s.expectTx()
	order := s.order(domain.OrderInProgress, "250.00")
	s.mockOrderRepo.On("FindOrderForUpdate", s.ctx, s.tx, s.enterpriseID, "order-1").Return(order, nil).Once()
	s.mockOrderRepo.On("SavePaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PaymentRecord")).Return(nil).Once()
	s.mockOrderRepo.On("UpdateOrderStateInTx", s.ctx, s.tx, s.enterpriseID, "order-1",
		domain.OrderPaid, domain.PaymentPaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockPostingSvc.On("PostPaymentInTx", s.ctx, s.tx, mock.AnythingOfType("domain.PurchaseOrder"),
		mock.AnythingOfType("domain.PaymentRecord"), s.userID).Return(nil).Once()

	_, err := s.service.ApplyPayment(s.ctx, s.enterpriseID, "order-1",
		dto.ApplyPaymentRequest{Amount: dec("250.00"), Method: "cash"}, s.userID)

	s.Require().NoError(err)
	s.mockOrderRepo.AssertExpectations(s.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
