package services

import (
	"context"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PostingSvc is the accounting posting engine. Every business event produces
// exactly one balanced journal, written inside the caller's transaction so
// the ledger can never drift from the stock state.
type PostingSvc interface {
	// PostOrderCreationInTx posts debit stock (or purchases) / credit
	// supplier for the order grand total.
	PostOrderCreationInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error

	// ReplaceOrderCreationInTx deletes the existing order-creation journal
	// and posts a fresh one for the new total (order-edit policy).
	ReplaceOrderCreationInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error

	// PostPaymentInTx posts debit supplier / credit cash-or-bank for one payment.
	PostPaymentInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, payment domain.PaymentRecord, userID string) error

	// PostOrderReversalInTx posts the reversal of the order-creation journal.
	PostOrderReversalInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, userID string) error

	// PostPaymentReversalInTx posts the reversal of one payment journal,
	// using the payment's original amount.
	PostPaymentReversalInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder, payment domain.PaymentRecord, userID string) error

	// Refresh drops the cached accounting configuration of an enterprise.
	Refresh(enterpriseID string)
}

// NumberingSvc generates monotonic per-day document numbers
// (PREFIX-YYYYMMDD-NNNN), serializable against concurrent callers.
type NumberingSvc interface {
	NextNumberInTx(ctx context.Context, tx pgx.Tx, enterpriseID, prefix string, at time.Time) (string, error)
}
