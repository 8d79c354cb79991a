package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced entity (order, product, warehouse,
// supplier, account) could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates the operation is not allowed in the entity's
// current lifecycle state.
var ErrInvalidState = errors.New("operation not allowed in current state")

// ErrInsufficientStock indicates an exit or transfer would drive on-hand
// quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrNegativeStockForbidden indicates an adjustment would drive on-hand below
// zero outside the allowed correction reasons.
var ErrNegativeStockForbidden = errors.New("negative stock forbidden")

// ErrOverpayment indicates a payment amount exceeds the remaining amount due.
var ErrOverpayment = errors.New("payment exceeds remaining due")

// ErrAccountingUnconfigured indicates a required accounting role has no
// account mapped in the enterprise accounting configuration.
var ErrAccountingUnconfigured = errors.New("accounting configuration missing")

// ErrUnknownPointOfSale indicates the warehouse routing lookup failed.
var ErrUnknownPointOfSale = errors.New("unknown point of sale")

// ErrCannotCancelPaid indicates an attempt to cancel a fully paid order.
var ErrCannotCancelPaid = errors.New("cannot cancel a paid order")

// ErrConflict indicates an optimistic concurrency violation.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and cause.
// The repository layer uses it to wrap driver errors without leaking them.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
