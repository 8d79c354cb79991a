package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/dto"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
)

// DefaultOrderPrefix is the document class prefix of purchase orders.
const DefaultOrderPrefix = "CMD"

// purchaseService drives the purchase order lifecycle. It orchestrates the
// stock ledger, the numbering service and the posting engine, always inside
// one transaction per command, with the order row locked first.
type purchaseService struct {
	orderRepo     portsrepo.OrderRepositoryWithTx
	movementRepo  portsrepo.MovementRepositoryFacade
	productRepo   portsrepo.ProductReader
	supplierRepo  portsrepo.SupplierReader
	warehouseRepo portsrepo.WarehouseReader
	stockSvc      portssvc.StockSvc
	postingSvc    portssvc.PostingSvc
	numberingSvc  portssvc.NumberingSvc
	orderPrefix   string
}

// NewPurchaseService creates a new PurchaseSvc.
func NewPurchaseService(
	orderRepo portsrepo.OrderRepositoryWithTx,
	movementRepo portsrepo.MovementRepositoryFacade,
	productRepo portsrepo.ProductReader,
	supplierRepo portsrepo.SupplierReader,
	warehouseRepo portsrepo.WarehouseReader,
	stockSvc portssvc.StockSvc,
	postingSvc portssvc.PostingSvc,
	numberingSvc portssvc.NumberingSvc,
	orderPrefix string,
) portssvc.PurchaseSvc {
	if orderPrefix == "" {
		orderPrefix = DefaultOrderPrefix
	}
	return &purchaseService{
		orderRepo:     orderRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		stockSvc:      stockSvc,
		postingSvc:    postingSvc,
		numberingSvc:  numberingSvc,
		orderPrefix:   orderPrefix,
	}
}

var _ portssvc.PurchaseSvc = (*purchaseService)(nil)

func (s *purchaseService) runInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.orderRepo.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return s.orderRepo.Commit(ctx, tx)
}

// buildLines validates the requested lines against the catalogue and computes
// their totals.
func (s *purchaseService) buildLines(ctx context.Context, enterpriseID, orderID string, reqs []dto.OrderLineRequest) ([]domain.OrderLine, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: order must carry at least one line", apperrors.ErrValidation)
	}

	productIDs := make([]string, 0, len(reqs))
	for _, l := range reqs {
		productIDs = append(productIDs, l.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, enterpriseID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	lines := make([]domain.OrderLine, len(reqs))
	for i, req := range reqs {
		product, found := products[req.ProductID]
		if !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, req.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, req.ProductID)
		}
		lines[i] = domain.OrderLine{
			LineID:       uuid.NewString(),
			OrderID:      orderID,
			ProductID:    req.ProductID,
			Quantity:     domain.TruncQuantity(req.Quantity),
			UnitPrice:    domain.RoundMoney(req.UnitPrice),
			LineDiscount: domain.RoundMoney(req.LineDiscount),
			Ordinal:      i + 1,
		}
	}
	return lines, nil
}

// CreatePurchaseOrder numbers and persists a new InProgress order and posts
// its order-creation journal in the same transaction.
func (s *purchaseService) CreatePurchaseOrder(ctx context.Context, enterpriseID string, req dto.CreateOrderRequest, userID string) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	warehouse, err := s.warehouseRepo.FindWarehouseByID(ctx, enterpriseID, req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("destination warehouse: %w", err)
	}
	if !warehouse.IsActive {
		return nil, fmt.Errorf("%w: warehouse %s is inactive", apperrors.ErrValidation, warehouse.Code)
	}
	if req.SupplierID != nil {
		supplier, err := s.supplierRepo.FindSupplierByID(ctx, enterpriseID, *req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("supplier: %w", err)
		}
		if !supplier.IsActive {
			return nil, fmt.Errorf("%w: supplier %s is inactive", apperrors.ErrValidation, supplier.Name)
		}
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()
	lines, err := s.buildLines(ctx, enterpriseID, orderID, req.Lines)
	if err != nil {
		return nil, err
	}

	order := domain.PurchaseOrder{
		OrderID:        orderID,
		EnterpriseID:   enterpriseID,
		SupplierID:     req.SupplierID,
		WarehouseID:    req.WarehouseID,
		OrderedAt:      now,
		GlobalDiscount: domain.RoundMoney(req.GlobalDiscount),
		State:          domain.OrderInProgress,
		PaymentStatus:  domain.PaymentUnpaid,
		Lines:          lines,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if err := order.ComputeGrandTotal(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	err = s.runInTx(ctx, func(tx pgx.Tx) error {
		number, err := s.numberingSvc.NextNumberInTx(ctx, tx, enterpriseID, s.orderPrefix, now)
		if err != nil {
			return fmt.Errorf("failed to number order: %w", err)
		}
		order.Number = number

		if err := s.orderRepo.SaveOrderInTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		return s.postingSvc.PostOrderCreationInTx(ctx, tx, order, userID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Purchase order created",
		slog.String("order_id", order.OrderID),
		slog.String("number", order.Number),
		slog.String("grand_total", order.GrandTotal.String()),
	)
	return &order, nil
}

// UpdatePurchaseOrderLines replaces the lines of an InProgress order. The
// order-creation journal is deleted and recreated for the new total.
func (s *purchaseService) UpdatePurchaseOrderLines(ctx context.Context, enterpriseID, orderID string, req dto.UpdateOrderLinesRequest, userID string) (*domain.PurchaseOrder, error) {
	var updated *domain.PurchaseOrder
	err := s.runInTx(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdate(ctx, tx, enterpriseID, orderID)
		if err != nil {
			return err
		}
		if order.State != domain.OrderInProgress {
			return fmt.Errorf("%w: lines of a %s order cannot change", apperrors.ErrInvalidState, order.State)
		}

		lines, err := s.buildLines(ctx, enterpriseID, orderID, req.Lines)
		if err != nil {
			return err
		}
		order.Lines = lines
		if req.GlobalDiscount != nil {
			order.GlobalDiscount = domain.RoundMoney(*req.GlobalDiscount)
		}
		if err := order.ComputeGrandTotal(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}

		// Payments already taken bound the total from below.
		paid := order.PaidAmount()
		if paid.GreaterThan(order.GrandTotal) {
			return fmt.Errorf("%w: %s already paid, the new total of %s falls below it", apperrors.ErrOverpayment, paid, order.GrandTotal)
		}
		order.PaymentStatus = domain.DerivePaymentStatus(paid, order.GrandTotal)
		if order.PaymentStatus == domain.PaymentPaid {
			order.State = domain.OrderPaid
		}
		order.Touch(userID, time.Now().UTC())

		if err := s.orderRepo.ReplaceOrderLinesInTx(ctx, tx, *order); err != nil {
			return fmt.Errorf("failed to replace order lines: %w", err)
		}
		if order.State != domain.OrderInProgress {
			if err := s.orderRepo.UpdateOrderStateInTx(ctx, tx, enterpriseID, orderID, order.State, order.PaymentStatus, userID, order.LastUpdatedAt); err != nil {
				return fmt.Errorf("failed to update order state: %w", err)
			}
		}
		if err := s.postingSvc.ReplaceOrderCreationInTx(ctx, tx, *order, userID); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReceivePurchaseOrder applies every order line as a stock entry at the line
// unit price. Returns false without error when entry movements already carry
// the order number.
func (s *purchaseService) ReceivePurchaseOrder(ctx context.Context, enterpriseID, orderID, userID string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	received := false

	err := s.runInTx(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdate(ctx, tx, enterpriseID, orderID)
		if err != nil {
			return err
		}
		switch order.State {
		case domain.OrderInProgress, domain.OrderPaid:
			// receivable
		case domain.OrderReceived:
			logger.Info("Order already received", slog.String("order_id", orderID))
			return nil
		default:
			return fmt.Errorf("%w: a %s order cannot be received", apperrors.ErrInvalidState, order.State)
		}

		already, err := s.movementRepo.HasEntryForReferenceInTx(ctx, tx, enterpriseID, order.Number)
		if err != nil {
			return fmt.Errorf("failed to check existing receipts: %w", err)
		}
		if already {
			logger.Info("Order already received", slog.String("order_id", orderID), slog.String("number", order.Number))
			return nil
		}

		if len(order.Lines) == 0 {
			return fmt.Errorf("%w: order %s has no lines to receive", apperrors.ErrValidation, order.Number)
		}

		now := time.Now().UTC()
		for _, line := range order.Lines {
			err := s.stockSvc.ApplyEntryInTx(ctx, tx, portssvc.EntryParams{
				EnterpriseID: enterpriseID,
				ProductID:    line.ProductID,
				WarehouseID:  order.WarehouseID,
				Quantity:     line.Quantity,
				UnitCost:     line.UnitPrice,
				Reference:    order.Number,
				Description:  fmt.Sprintf("Receipt of order %s", order.Number),
				OccurredAt:   now,
				UserID:       userID,
			})
			if err != nil {
				return fmt.Errorf("line %d: %w", line.Ordinal, err)
			}
		}

		state := domain.OrderReceived
		if order.PaidAmount().GreaterThanOrEqual(order.GrandTotal) && order.GrandTotal.Sign() > 0 {
			state = domain.OrderPaid
		}
		if err := s.orderRepo.UpdateOrderStateInTx(ctx, tx, enterpriseID, orderID, state, order.PaymentStatus, userID, now); err != nil {
			return fmt.Errorf("failed to update order state: %w", err)
		}

		received = true
		logger.Info("Purchase order received",
			slog.String("order_id", orderID),
			slog.String("number", order.Number),
			slog.String("state", string(state)),
		)
		return nil
	})
	if err != nil {
		return false, err
	}
	return received, nil
}

// CancelPurchaseOrder cancels an InProgress or Received order. Received goods
// are compensated by exits that may drive stock negative (logged), every
// payment is voided with a reversal journal, and the order-creation journal
// is reversed.
func (s *purchaseService) CancelPurchaseOrder(ctx context.Context, enterpriseID, orderID, reason, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	return s.runInTx(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdate(ctx, tx, enterpriseID, orderID)
		if err != nil {
			return err
		}
		switch order.State {
		case domain.OrderPaid:
			return fmt.Errorf("%w: void its payments first", apperrors.ErrCannotCancelPaid)
		case domain.OrderCancelled:
			return fmt.Errorf("%w: order %s is already cancelled", apperrors.ErrInvalidState, order.Number)
		}

		now := time.Now().UTC()
		if order.State == domain.OrderReceived {
			for _, line := range order.Lines {
				err := s.stockSvc.ApplyExitInTx(ctx, tx, portssvc.ExitParams{
					EnterpriseID:  enterpriseID,
					ProductID:     line.ProductID,
					WarehouseID:   order.WarehouseID,
					Quantity:      line.Quantity,
					Reference:     domain.CancelRefPrefix + order.Number,
					Description:   fmt.Sprintf("Cancellation of order %s", order.Number),
					OccurredAt:    now,
					UserID:        userID,
					AllowNegative: true,
					Reason:        domain.ReasonCancelOfReceivedOrder,
				})
				if err != nil {
					return fmt.Errorf("line %d: %w", line.Ordinal, err)
				}
			}
		}

		// The creation journal exists from drafting onwards; reverse it
		// whichever state we cancel from.
		if err := s.postingSvc.PostOrderReversalInTx(ctx, tx, *order, userID); err != nil {
			return err
		}

		for _, payment := range order.Payments {
			if payment.Voided {
				continue
			}
			description := fmt.Sprintf("Voided on cancellation of %s; original amount %s", order.Number, payment.Amount)
			if reason != "" {
				description += " (" + reason + ")"
			}
			if err := s.orderRepo.VoidPaymentInTx(ctx, tx, payment.PaymentID, description, userID, now); err != nil {
				return fmt.Errorf("failed to void payment %s: %w", payment.PaymentID, err)
			}
			if err := s.postingSvc.PostPaymentReversalInTx(ctx, tx, *order, payment, userID); err != nil {
				return err
			}
		}

		if err := s.orderRepo.UpdateOrderStateInTx(ctx, tx, enterpriseID, orderID, domain.OrderCancelled, domain.PaymentUnpaid, userID, now); err != nil {
			return fmt.Errorf("failed to update order state: %w", err)
		}

		logger.Info("Purchase order cancelled",
			slog.String("order_id", orderID),
			slog.String("number", order.Number),
			slog.String("from_state", string(order.State)),
			slog.String("reason", reason),
		)
		return nil
	})
}

func (s *purchaseService) GetOrder(ctx context.Context, enterpriseID, orderID string) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, enterpriseID, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}
	return order, nil
}

func (s *purchaseService) ListOrders(ctx context.Context, enterpriseID string, filter portsrepo.OrderFilter) ([]domain.PurchaseOrder, error) {
	return s.orderRepo.ListOrders(ctx, enterpriseID, filter)
}
