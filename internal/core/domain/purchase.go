package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderState is the lifecycle state of a purchase order.
type OrderState string

const (
	OrderInProgress OrderState = "IN_PROGRESS"
	OrderReceived   OrderState = "RECEIVED"
	OrderPaid       OrderState = "PAID"
	OrderCancelled  OrderState = "CANCELLED"
)

// PaymentStatus is the settlement axis of a purchase order, independent of
// the lifecycle state.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// PurchaseOrder is the aggregate root for purchasing. Its number is issued by
// the numbering service (CMD-YYYYMMDD-NNNN).
type PurchaseOrder struct {
	OrderID        string          `json:"orderID"`
	EnterpriseID   string          `json:"enterpriseID"`
	Number         string          `json:"number"`
	SupplierID     *string         `json:"supplierID"` // Nullable
	WarehouseID    string          `json:"warehouseID"`
	OrderedAt      time.Time       `json:"orderedAt"`
	GlobalDiscount decimal.Decimal `json:"globalDiscount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	State          OrderState      `json:"state"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Lines          []OrderLine     `json:"lines,omitempty"`
	Payments       []PaymentRecord `json:"payments,omitempty"`
	AuditFields
}

// OrderLine is one product entry within an order.
type OrderLine struct {
	LineID       string          `json:"lineID"`
	OrderID      string          `json:"orderID"`
	ProductID    string          `json:"productID"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
	Ordinal      int             `json:"ordinal"`
}

// ComputeTotal computes quantity x unit price - line discount, rounded once.
// It fails when the line is malformed or the total would be negative.
func (l *OrderLine) ComputeTotal() error {
	if l.Quantity.Sign() <= 0 {
		return fmt.Errorf("line quantity must be positive")
	}
	if l.UnitPrice.Sign() < 0 {
		return fmt.Errorf("line unit price must not be negative")
	}
	if l.LineDiscount.Sign() < 0 {
		return fmt.Errorf("line discount must not be negative")
	}
	total := RoundMoney(l.Quantity.Mul(l.UnitPrice).Sub(l.LineDiscount))
	if total.Sign() < 0 {
		return fmt.Errorf("line discount exceeds line amount")
	}
	l.LineTotal = total
	return nil
}

// ComputeGrandTotal recomputes every line total and the order grand total
// (sum of line totals minus the global discount, never negative).
func (o *PurchaseOrder) ComputeGrandTotal() error {
	if o.GlobalDiscount.Sign() < 0 {
		return fmt.Errorf("global discount must not be negative")
	}
	sum := decimal.Zero
	for i := range o.Lines {
		if err := o.Lines[i].ComputeTotal(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		sum = sum.Add(o.Lines[i].LineTotal)
	}
	total := RoundMoney(sum.Sub(o.GlobalDiscount))
	if total.Sign() < 0 {
		return fmt.Errorf("global discount exceeds order amount")
	}
	o.GrandTotal = total
	return nil
}

// PaidAmount sums the non-voided payments attached to the order.
func (o *PurchaseOrder) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range o.Payments {
		if !p.Voided {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// DerivePaymentStatus maps a paid amount against a grand total.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.Sign() <= 0:
		return PaymentUnpaid
	case paid.LessThan(total):
		return PaymentPartial
	default:
		return PaymentPaid
	}
}

// PaymentRecord is one payment applied to an order. A void preserves the
// original amount in the description and zeroes the amount.
type PaymentRecord struct {
	PaymentID   string          `json:"paymentID"`
	OrderID     string          `json:"orderID"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Voided      bool            `json:"voided"`
	PaidAt      time.Time       `json:"paidAt"`
	AuditFields
}

// bank-backed payment method tags; anything else settles against the cash
// account.
var bankMethods = map[string]struct{}{
	"bank":          {},
	"bank_transfer": {},
	"virement":      {},
	"cheque":        {},
	"card":          {},
}

// IsBankMethod reports whether a payment method settles through the bank
// account rather than the cash account.
func IsBankMethod(method string) bool {
	_, ok := bankMethods[method]
	return ok
}
