package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
)

// postingService produces one balanced two-entry journal per business event.
// Role-to-account resolution goes through the per-enterprise accounting
// configuration, cached after first load.
type postingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	configRepo  portsrepo.AccountingConfigReader

	mu    sync.RWMutex
	cache map[string]*domain.AccountingConfig
}

// NewPostingService creates a new PostingSvc.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, configRepo portsrepo.AccountingConfigReader) portssvc.PostingSvc {
	return &postingService{
		journalRepo: journalRepo,
		configRepo:  configRepo,
		cache:       make(map[string]*domain.AccountingConfig),
	}
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// Refresh drops the cached configuration of an enterprise so the next posting
// reloads it.
func (s *postingService) Refresh(enterpriseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, enterpriseID)
}

func (s *postingService) config(ctx context.Context, enterpriseID string) (*domain.AccountingConfig, error) {
	s.mu.RLock()
	cfg, ok := s.cache[enterpriseID]
	s.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	cfg, err := s.configRepo.FindAccountingConfig(ctx, enterpriseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no accounting configuration for enterprise %s", apperrors.ErrAccountingUnconfigured, enterpriseID)
		}
		return nil, fmt.Errorf("failed to load accounting configuration: %w", err)
	}

	s.mu.Lock()
	s.cache[enterpriseID] = cfg
	s.mu.Unlock()
	return cfg, nil
}

// postTwoLegged resolves the two roles and writes a balanced journal with
// ordinal 1 for the debit entry and 2 for the credit entry.
func (s *postingService) postTwoLegged(
	ctx context.Context,
	tx pgx.Tx,
	enterpriseID string,
	op domain.OperationType,
	date time.Time,
	label, reference string,
	amount decimal.Decimal,
	debitRole, creditRole domain.AccountRole,
	userID string,
) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.Sign() == 0 {
		// A zero-value event carries no entries; nothing to post.
		logger.Debug("Skipping zero-amount journal", slog.String("reference", reference), slog.String("operation", string(op)))
		return nil
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: journal amount must not be negative", apperrors.ErrValidation)
	}

	cfg, err := s.config(ctx, enterpriseID)
	if err != nil {
		return err
	}

	debitAccount, ok := cfg.Resolve(debitRole)
	if !ok {
		return fmt.Errorf("%w: role %s is unmapped", apperrors.ErrAccountingUnconfigured, debitRole)
	}
	creditAccount, ok := cfg.Resolve(creditRole)
	if !ok {
		return fmt.Errorf("%w: role %s is unmapped", apperrors.ErrAccountingUnconfigured, creditRole)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	journal := domain.Journal{
		JournalID:    journalID,
		EnterpriseID: enterpriseID,
		JournalDate:  date,
		Label:        label,
		Amount:       amount,
		Operation:    op,
		Reference:    reference,
		Entries: []domain.Entry{
			{
				EntryID:   uuid.NewString(),
				JournalID: journalID,
				AccountID: debitAccount,
				Debit:     amount,
				Credit:    decimal.Zero,
				Ordinal:   1,
				Label:     label,
			},
			{
				EntryID:   uuid.NewString(),
				JournalID: journalID,
				AccountID: creditAccount,
				Debit:     decimal.Zero,
				Credit:    amount,
				Ordinal:   2,
				Label:     label,
			},
		},
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := journal.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("reference", reference))
		return fmt.Errorf("failed to save journal: %w", err)
	}
	return nil
}

// settlementRole picks the cash or bank role from the payment method tag.
func settlementRole(method string) domain.AccountRole {
	if domain.IsBankMethod(method) {
		return domain.RoleBank
	}
	return domain.RoleCash
}

func (s *postingService) PostOrderCreationInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error {
	label := fmt.Sprintf("Purchase order %s", order.Number)
	return s.postTwoLegged(ctx, tx, order.EnterpriseID, domain.OpOrderCreation, order.OrderedAt, label, order.Number,
		order.GrandTotal, domain.RoleStock, domain.RoleSupplier, userID)
}

func (s *postingService) ReplaceOrderCreationInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error {
	if err := s.journalRepo.DeleteJournalsByReferenceInTx(ctx, tx, order.EnterpriseID, domain.OpOrderCreation, order.Number); err != nil {
		return fmt.Errorf("failed to delete order-creation journal for %s: %w", order.Number, err)
	}
	return s.PostOrderCreationInTx(ctx, tx, order, userID)
}

func (s *postingService) PostPaymentInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, payment domain.PaymentRecord, userID string) error {
	label := fmt.Sprintf("Payment on order %s", order.Number)
	return s.postTwoLegged(ctx, tx, order.EnterpriseID, domain.OpPayment, payment.PaidAt, label, payment.PaymentID,
		payment.Amount, domain.RoleSupplier, settlementRole(payment.Method), userID)
}

func (s *postingService) PostOrderReversalInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error {
	label := fmt.Sprintf("Cancellation of order %s", order.Number)
	return s.postTwoLegged(ctx, tx, order.EnterpriseID, domain.OpOrderCancellation, time.Now().UTC(), label,
		domain.CancelRefPrefix+order.Number, order.GrandTotal, domain.RoleSupplier, domain.RoleStock, userID)
}

func (s *postingService) PostPaymentReversalInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, payment domain.PaymentRecord, userID string) error {
	label := fmt.Sprintf("Payment reversal on order %s", order.Number)
	return s.postTwoLegged(ctx, tx, order.EnterpriseID, domain.OpPaymentCancellation, time.Now().UTC(), label,
		domain.CancelRefPrefix+payment.PaymentID, payment.Amount, settlementRole(payment.Method), domain.RoleSupplier, userID)
}
