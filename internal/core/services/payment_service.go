package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
)

// paymentService allocates partial payments to purchase orders and drives
// the payment-status axis, posting one journal per payment.
type paymentService struct {
	orderRepo  portsrepo.OrderRepositoryWithTx
	postingSvc portssvc.PostingSvc
}

// NewPaymentService creates a new PaymentSvc.
func NewPaymentService(orderRepo portsrepo.OrderRepositoryWithTx, postingSvc portssvc.PostingSvc) portssvc.PaymentSvc {
	return &paymentService{
		orderRepo:  orderRepo,
		postingSvc: postingSvc,
	}
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

// ApplyPayment applies one payment to an order. The amount may not exceed the
// remaining due; a payment completing the total promotes the order to Paid,
// whether or not the goods were received yet.
func (s *paymentService) ApplyPayment(ctx context.Context, enterpriseID, orderID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.orderRepo.Rollback(ctx, tx)

	order, err := s.orderRepo.FindOrderForUpdate(ctx, tx, enterpriseID, orderID)
	if err != nil {
		return nil, err
	}
	if order.State == domain.OrderPaid || order.State == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: a %s order accepts no payment", apperrors.ErrInvalidState, order.State)
	}

	amount := domain.RoundMoney(req.Amount)
	paidSoFar := order.PaidAmount()
	remaining := order.GrandTotal.Sub(paidSoFar)
	if amount.GreaterThan(remaining) {
		return nil, fmt.Errorf("%w: remaining due is %s, payment of %s requested", apperrors.ErrOverpayment, remaining, amount)
	}

	now := time.Now().UTC()
	payment := domain.PaymentRecord{
		PaymentID:   uuid.NewString(),
		OrderID:     orderID,
		Amount:      amount,
		Method:      req.Method,
		Reference:   req.Reference,
		Description: req.Description,
		PaidAt:      now,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := s.orderRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	newPaid := paidSoFar.Add(amount)
	paymentStatus := domain.DerivePaymentStatus(newPaid, order.GrandTotal)
	state := order.State
	if paymentStatus == domain.PaymentPaid {
		state = domain.OrderPaid
	}
	if err := s.orderRepo.UpdateOrderStateInTx(ctx, tx, enterpriseID, orderID, state, paymentStatus, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update order state: %w", err)
	}

	if err := s.postingSvc.PostPaymentInTx(ctx, tx, *order, payment, userID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payment applied",
		slog.String("order_id", orderID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", amount.String()),
		slog.String("payment_status", string(paymentStatus)),
		slog.String("state", string(state)),
	)
	return &payment, nil
}
