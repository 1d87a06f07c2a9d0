// Package domain defines error types for the stock management system.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when no product has the given code
type ProductNotFoundError struct {
	Code int
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: code=%d", e.Code)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// OrderNotFoundError is returned when no order has the given code
type OrderNotFoundError struct {
	Code int
}

// Error implements the error interface for OrderNotFoundError
func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order not found: code=%d", e.Code)
}

// Is allows proper error type checking with errors.Is()
func (e *OrderNotFoundError) Is(target error) bool {
	_, ok := target.(*OrderNotFoundError)
	return ok
}

// DuplicateNameError is returned when a product name is already taken,
// case-insensitively, by any product including archived ones
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface for DuplicateNameError
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate product name: %q already exists", e.Name)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateNameError) Is(target error) bool {
	_, ok := target.(*DuplicateNameError)
	return ok
}

// InsufficientStockError is returned when an order operation asks for more
// units than the product currently has in stock
type InsufficientStockError struct {
	ProductCode int
	Requested   int
	Available   int
}

// Error implements the error interface for InsufficientStockError
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product #%d: requested=%d, available=%d",
		e.ProductCode, e.Requested, e.Available)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// NotDraftError is returned when lines are added to an order that already
// left the draft state
type NotDraftError struct {
	OrderCode int
	Status    OrderStatus
}

// Error implements the error interface for NotDraftError
func (e *NotDraftError) Error() string {
	return fmt.Sprintf("order #%d is no longer a draft (status=%s)", e.OrderCode, e.Status)
}

// Is allows proper error type checking with errors.Is()
func (e *NotDraftError) Is(target error) bool {
	_, ok := target.(*NotDraftError)
	return ok
}

// InvalidTransitionError is returned when an order or product is not in the
// state an operation requires
type InvalidTransitionError struct {
	Op     string
	Reason string
}

// Error implements the error interface for InvalidTransitionError
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Op, e.Reason)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidTransitionError) Is(target error) bool {
	_, ok := target.(*InvalidTransitionError)
	return ok
}

// ValidationError is returned when an input fails validation before any
// mutation takes place
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s (value=%v)", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(code int) error {
	return &ProductNotFoundError{Code: code}
}

// NewOrderNotFoundError creates a new OrderNotFoundError
func NewOrderNotFoundError(code int) error {
	return &OrderNotFoundError{Code: code}
}

// NewDuplicateNameError creates a new DuplicateNameError
func NewDuplicateNameError(name string) error {
	return &DuplicateNameError{Name: name}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productCode, requested, available int) error {
	return &InsufficientStockError{ProductCode: productCode, Requested: requested, Available: available}
}

// NewNotDraftError creates a new NotDraftError
func NewNotDraftError(orderCode int, status OrderStatus) error {
	return &NotDraftError{OrderCode: orderCode, Status: status}
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(op, reason string) error {
	return &InvalidTransitionError{Op: op, Reason: reason}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, reason string, value interface{}) error {
	return &ValidationError{Field: field, Reason: reason, Value: value}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsOrderNotFoundError checks if an error is an OrderNotFoundError
func IsOrderNotFoundError(err error) bool {
	var onf *OrderNotFoundError
	return errors.As(err, &onf)
}

// IsDuplicateNameError checks if an error is a DuplicateNameError
func IsDuplicateNameError(err error) bool {
	var dne *DuplicateNameError
	return errors.As(err, &dne)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// IsNotDraftError checks if an error is a NotDraftError
func IsNotDraftError(err error) bool {
	var nde *NotDraftError
	return errors.As(err, &nde)
}

// IsInvalidTransitionError checks if an error is an InvalidTransitionError
func IsInvalidTransitionError(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsBusinessError reports whether err is an expected business-rule rejection
// rather than a fault. Callers render these as messages, not failures.
func IsBusinessError(err error) bool {
	return IsProductNotFoundError(err) ||
		IsOrderNotFoundError(err) ||
		IsDuplicateNameError(err) ||
		IsInsufficientStockError(err) ||
		IsNotDraftError(err) ||
		IsInvalidTransitionError(err) ||
		IsValidationError(err)
}
