package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	"github.com/gescom-erp/gescom_backend/internal/models"
	"github.com/gescom-erp/gescom_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for purchase order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepositoryWithTx
var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so order loading
// helpers work inside and outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const orderColumns = `
	order_id, enterprise_id, order_number, supplier_id, warehouse_id, ordered_at,
	global_discount, grand_total, state, payment_status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row rowScanner) (models.PurchaseOrder, error) {
	var m models.PurchaseOrder
	err := row.Scan(
		&m.OrderID,
		&m.EnterpriseID,
		&m.Number,
		&m.SupplierID,
		&m.WarehouseID,
		&m.OrderedAt,
		&m.GlobalDiscount,
		&m.GrandTotal,
		&m.State,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func fetchOrderLines(ctx context.Context, q querier, orderID string) ([]domain.OrderLine, error) {
	query := `
		SELECT line_id, order_id, product_id, quantity, unit_price, line_discount, line_total, ordinal
		FROM achat_commande_lignes
		WHERE order_id = $1
		ORDER BY ordinal;
	`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of order %s: %w", orderID, err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var m models.OrderLine
		if err := rows.Scan(&m.LineID, &m.OrderID, &m.ProductID, &m.Quantity, &m.UnitPrice, &m.LineDiscount, &m.LineTotal, &m.Ordinal); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, mapping.ToDomainOrderLine(m))
	}
	return lines, rows.Err()
}

func fetchPayments(ctx context.Context, q querier, orderID string) ([]domain.PaymentRecord, error) {
	query := `
		SELECT payment_id, order_id, amount, method, reference, description, voided, paid_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM achat_depenses
		WHERE order_id = $1
		ORDER BY paid_at, payment_id;
	`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments of order %s: %w", orderID, err)
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var m models.PaymentRecord
		err := rows.Scan(
			&m.PaymentID,
			&m.OrderID,
			&m.Amount,
			&m.Method,
			&m.Reference,
			&m.Description,
			&m.Voided,
			&m.PaidAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, mapping.ToDomainPaymentRecord(m))
	}
	return payments, rows.Err()
}

func (r *PgxOrderRepository) findOrder(ctx context.Context, q querier, enterpriseID, orderID, suffix string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM achat_commandes
		WHERE enterprise_id = $1 AND order_id = $2` + suffix + `;`
	m, err := scanOrder(q.QueryRow(ctx, query, enterpriseID, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	order := mapping.ToDomainPurchaseOrder(m)
	if order.Lines, err = fetchOrderLines(ctx, q, orderID); err != nil {
		return nil, err
	}
	if order.Payments, err = fetchPayments(ctx, q, orderID); err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderByID retrieves an order with its lines and payments.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, enterpriseID, orderID string) (*domain.PurchaseOrder, error) {
	return r.findOrder(ctx, r.Pool, enterpriseID, orderID, "")
}

// FindOrderForUpdate locks the order row and returns the order with its lines
// and payments.
func (r *PgxOrderRepository) FindOrderForUpdate(ctx context.Context, tx pgx.Tx, enterpriseID, orderID string) (*domain.PurchaseOrder, error) {
	return r.findOrder(ctx, tx, enterpriseID, orderID, " FOR UPDATE")
}

// ListOrders retrieves order headers matching the filter, newest first.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, enterpriseID string, filter portsrepo.OrderFilter) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM achat_commandes
		WHERE enterprise_id = $1
	`
	args := []any{enterpriseID}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		query += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		query += fmt.Sprintf(" AND warehouse_id = $%d", len(args))
	}
	if filter.State != nil {
		args = append(args, string(*filter.State))
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND ordered_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND ordered_at < $%d", len(args))
	}
	query += " ORDER BY ordered_at DESC, order_number DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.PurchaseOrder
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, mapping.ToDomainPurchaseOrder(m))
	}
	return orders, rows.Err()
}

// CountActiveOrdersBySupplier counts non-cancelled orders referencing a supplier.
func (r *PgxOrderRepository) CountActiveOrdersBySupplier(ctx context.Context, enterpriseID, supplierID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM achat_commandes
		WHERE enterprise_id = $1 AND supplier_id = $2 AND state <> $3;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, enterpriseID, supplierID, string(domain.OrderCancelled)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders of supplier %s: %w", supplierID, err)
	}
	return count, nil
}

func insertOrderLines(ctx context.Context, tx pgx.Tx, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO achat_commande_lignes (line_id, order_id, product_id, quantity, unit_price, line_discount, line_total, ordinal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelOrderLine(line)
		batch.Queue(query, m.LineID, m.OrderID, m.ProductID, m.Quantity, m.UnitPrice, m.LineDiscount, m.LineTotal, m.Ordinal)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}
	return nil
}

// SaveOrderInTx inserts a new order header with its lines.
func (r *PgxOrderRepository) SaveOrderInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder) error {
	m := mapping.ToModelPurchaseOrder(order)
	query := `
		INSERT INTO achat_commandes (
			order_id, enterprise_id, order_number, supplier_id, warehouse_id, ordered_at,
			global_discount, grand_total, state, payment_status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.OrderID,
		m.EnterpriseID,
		m.Number,
		m.SupplierID,
		m.WarehouseID,
		m.OrderedAt,
		m.GlobalDiscount,
		m.GrandTotal,
		m.State,
		m.PaymentStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return fmt.Errorf("failed to insert order %s: %w", m.OrderID, err)
	}
	return insertOrderLines(ctx, tx, order.Lines)
}

// ReplaceOrderLinesInTx deletes and re-inserts the lines of an order and
// stores the recomputed totals on the header.
func (r *PgxOrderRepository) ReplaceOrderLinesInTx(ctx context.Context, tx pgx.Tx, order domain.PurchaseOrder) error {
	if _, err := tx.Exec(ctx, `DELETE FROM achat_commande_lignes WHERE order_id = $1;`, order.OrderID); err != nil {
		return fmt.Errorf("failed to delete lines of order %s: %w", order.OrderID, err)
	}
	if err := insertOrderLines(ctx, tx, order.Lines); err != nil {
		return err
	}
	query := `
		UPDATE achat_commandes
		SET global_discount = $2, grand_total = $3, payment_status = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE order_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		order.OrderID,
		order.GlobalDiscount,
		order.GrandTotal,
		string(order.PaymentStatus),
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update totals of order %s: %w", order.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateOrderStateInTx stores a new lifecycle state and payment status.
func (r *PgxOrderRepository) UpdateOrderStateInTx(ctx context.Context, tx pgx.Tx, enterpriseID, orderID string, state domain.OrderState, paymentStatus domain.PaymentStatus, userID string, at time.Time) error {
	query := `
		UPDATE achat_commandes
		SET state = $3, payment_status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE enterprise_id = $1 AND order_id = $2;
	`
	tag, err := tx.Exec(ctx, query, enterpriseID, orderID, string(state), string(paymentStatus), at, userID)
	if err != nil {
		return fmt.Errorf("failed to update state of order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePaymentInTx appends a payment record to an order.
func (r *PgxOrderRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord) error {
	m := mapping.ToModelPaymentRecord(payment)
	query := `
		INSERT INTO achat_depenses (
			payment_id, order_id, amount, method, reference, description, voided, paid_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.OrderID,
		m.Amount,
		m.Method,
		m.Reference,
		m.Description,
		m.Voided,
		m.PaidAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// VoidPaymentInTx zeroes a payment's amount and replaces its description. The
// row itself stays; the original amount survives only in the description.
func (r *PgxOrderRepository) VoidPaymentInTx(ctx context.Context, tx pgx.Tx, paymentID, description, userID string, at time.Time) error {
	query := `
		UPDATE achat_depenses
		SET amount = 0, voided = TRUE, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE payment_id = $1;
	`
	tag, err := tx.Exec(ctx, query, paymentID, description, at, userID)
	if err != nil {
		return fmt.Errorf("failed to void payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
