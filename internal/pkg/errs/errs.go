package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every concrete error type
// in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound        = errors.New("object not found")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsOutOfRange     = errors.New("value is out of range")
	ErrValueIsRequired       = errors.New("value is required")
	ErrVersionIsInvalid      = errors.New("version is invalid")
	ErrInvalidState          = errors.New("operation is not allowed in current state")
	ErrInvalidTransition     = errors.New("status transition is not allowed")
	ErrEmptyOrder            = errors.New("order has no items")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInventoryUnavailable  = errors.New("inventory service is unavailable")
	ErrConcurrencyConflict   = errors.New("concurrent modification detected")
)

// sanitize strips newlines from values interpolated into error messages so a
// single error always renders as a single log line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value lies outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that an aggregate carries an invalid version value.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidStateError indicates that an aggregate operation is not permitted in
// the aggregate's current lifecycle state.
type InvalidStateError struct {
	Operation string
	Status    string
}

// NewInvalidStateError creates an InvalidStateError for the given operation and status.
func NewInvalidStateError(operation, status string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

func (e *InvalidStateError) Error() string {
	return sanitize(fmt.Sprintf("%s: cannot %s an order in status %s", ErrInvalidState, e.Operation, e.Status))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InvalidTransitionError indicates a status transition outside the lifecycle
// adjacency table.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// EmptyOrderError indicates an attempt to confirm an order that has no items.
type EmptyOrderError struct {
	OrderID string
}

// NewEmptyOrderError creates an EmptyOrderError for the given order.
func NewEmptyOrderError(orderID string) *EmptyOrderError {
	return &EmptyOrderError{OrderID: orderID}
}

func (e *EmptyOrderError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrEmptyOrder, e.OrderID))
}

func (e *EmptyOrderError) Unwrap() error {
	return ErrEmptyOrder
}

// InsufficientInventoryError is a business rejection: one or more products
// cannot be reserved in the requested quantity. It is never retried.
type InsufficientInventoryError struct {
	Products []string
}

// NewInsufficientInventoryError creates an InsufficientInventoryError listing
// the unsatisfiable product identifiers.
func NewInsufficientInventoryError(products []string) *InsufficientInventoryError {
	return &InsufficientInventoryError{Products: products}
}

func (e *InsufficientInventoryError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrInsufficientInventory, strings.Join(e.Products, ", ")))
}

func (e *InsufficientInventoryError) Unwrap() error {
	return ErrInsufficientInventory
}

// InventoryUnavailableError is a transient infrastructure fault at the
// inventory boundary (timeout, transport failure, 5xx). Distinct from
// InsufficientInventoryError so callers can apply bounded retries.
type InventoryUnavailableError struct {
	Cause error
}

// NewInventoryUnavailableError creates an InventoryUnavailableError wrapping the fault.
func NewInventoryUnavailableError(cause error) *InventoryUnavailableError {
	return &InventoryUnavailableError{Cause: cause}
}

func (e *InventoryUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (cause: %s)", ErrInventoryUnavailable, e.Cause))
	}
	return ErrInventoryUnavailable.Error()
}

func (e *InventoryUnavailableError) Unwrap() error {
	return ErrInventoryUnavailable
}

// ConcurrencyConflictError indicates an optimistic-lock loss: a save was
// attempted with a version that no longer matches the stored aggregate.
type ConcurrencyConflictError struct {
	ObjectID string
	Version  int
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the given
// object and the stale version that was presented.
func NewConcurrencyConflictError(objectID string, version int) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ObjectID: objectID, Version: version}
}

func (e *ConcurrencyConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s at version %d", ErrConcurrencyConflict, e.ObjectID, e.Version))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
